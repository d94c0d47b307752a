package commands

import (
	"github.com/spf13/cobra"

	"github.com/parknav/parknav/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the maps directory and reload changed buildings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.RunWatch(cmd.Context(), app.WatchRunOptions{
				Settings: c.settings(),
				Window:   debounce,
			})
		},
	}

	cmd.Flags().Duration("debounce", 0, "Window for coalescing change bursts (0 uses the default)")

	return cmd
}
