package commands

import (
	"github.com/spf13/cobra"

	"github.com/parknav/parknav/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the current map of a building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			building, _ := cmd.Flags().GetString("building")
			grids, _ := cmd.Flags().GetBool("grids")
			output, _ := cmd.Flags().GetString("output")

			return c.app.RunInspect(cmd.Context(), app.InspectRunOptions{
				Settings: c.settings(),
				Building: building,
				Grids:    grids,
				Output:   output,
			})
		},
	}

	cmd.Flags().StringP("building", "b", "", "Building id to summarize")
	cmd.Flags().BoolP("grids", "g", false, "Include a grid sketch of every level")
	cmd.Flags().StringP("output", "o", "auto", "Output mode: auto, table, or json")
	_ = cmd.MarkFlagRequired("building")

	return cmd
}
