package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/dreamline/cmd/dreamline/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	// DREAMLINE_* variables may come from a local .env file.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dreamline: %v\n", err)
		return 1
	}
	return 0
}
