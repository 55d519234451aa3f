package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/config"
	"github.com/five82/dreamline/internal/logging"
	"github.com/five82/dreamline/internal/server"
	"github.com/five82/dreamline/internal/symbols"
)

// serve: run the interpretation service.
func serveCmd() *cobra.Command {
	var (
		listen    string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dream interpretation HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if v := strings.TrimSpace(listen); v != "" {
				cfg.Server.Listen = v
			}
			if v := strings.TrimSpace(staticDir); v != "" {
				cfg.Server.StaticDir = v
			}

			logger, err := logging.New(logging.Config{
				Level:    cfg.Server.LogLevel,
				Encoding: cfg.Server.LogEncoding,
			})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			catalog, err := symbols.Builtin()
			if err != nil {
				return fmt.Errorf("load symbol catalog: %w", err)
			}
			logger.Info("Symbol catalog loaded", zap.Int("symbols", catalog.Len()))

			return server.Run(cmd.Context(), server.Options{
				Config:  cfg.Server,
				Catalog: catalog,
				Logger:  logger,
			})
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides server.listen)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory of static files to serve (overrides server.static_dir)")
	return cmd
}
