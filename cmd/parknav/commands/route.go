package commands

import (
	"github.com/spf13/cobra"

	"github.com/parknav/parknav/internal/app"
)

func (c *CLI) newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute the shortest route between two cells of a building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			building, _ := cmd.Flags().GetString("building")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			baseline, _ := cmd.Flags().GetFloat64("baseline")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			output, _ := cmd.Flags().GetString("output")

			return c.app.RunRoute(cmd.Context(), app.RouteRunOptions{
				Settings: c.settings(),
				Building: building,
				From:     from,
				To:       to,
				Baseline: baseline,
				NoCache:  noCache,
				Output:   output,
			})
		},
	}

	cmd.Flags().StringP("building", "b", "", "Building id of the map to route in")
	cmd.Flags().String("from", "", "Start cell: level,row,col or a slot/entrance/exit id")
	cmd.Flags().String("to", "", "Destination cell: level,row,col or a slot/entrance/exit id")
	cmd.Flags().Float64("baseline", 0, "Baseline drive distance in meters for the emission estimate")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the route cache and force a fresh search")
	cmd.Flags().StringP("output", "o", "auto", "Output mode: auto, table, or json")
	_ = cmd.MarkFlagRequired("building")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
