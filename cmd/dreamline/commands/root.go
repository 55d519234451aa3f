package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/dreamline/internal/app"
)

var (
	configPath string
	prefsPath  string
)

// Execute runs the dreamline CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var probeEvery time.Duration

	root := &cobra.Command{
		Use:           "dreamline",
		Short:         "Share a dream and read its interpretation",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: configPath,
				PrefsPath:  prefsPath,
				ProbeEvery: probeEvery,
			})
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/dreamline/config.toml)")
	root.PersistentFlags().StringVar(&prefsPath, "prefs", "", "UI prefs file (default ~/.config/dreamline/prefs.toml)")
	root.Flags().DurationVar(&probeEvery, "probe", 0, "health probe interval (default 2s)")

	root.AddCommand(askCmd(), serveCmd())
	return root
}
