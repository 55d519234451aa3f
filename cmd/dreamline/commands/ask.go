package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/dreamline/internal/app"
	"github.com/five82/dreamline/internal/form"
	"github.com/five82/dreamline/internal/logging"
)

var errNotInterpreted = errors.New("dream was not interpreted")

// ask <dream...>: submit one dream and print the interpretation.
func askCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ask <dream...>",
		Short: "Interpret a single dream without the terminal UI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Config{Level: level, Encoding: "console", OutputPath: "stderr"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			session, err := app.NewSession(configPath, logger)
			if err != nil {
				return err
			}

			outcome, err := session.Controller.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Store.Snapshot().Message)

			switch outcome {
			case form.OutcomeInterpreted, form.OutcomeEmpty:
				return nil
			default:
				return fmt.Errorf("%w (%s)", errNotInterpreted, outcome)
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log request details to stderr")
	return cmd
}
