// Package commands implements the CLI commands for the parknav engine.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parknav/parknav/internal/app"
	"github.com/parknav/parknav/internal/build"
)

// CLI represents the command line interface for parknav.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	RunRoute(ctx context.Context, opts app.RouteRunOptions) error
	RunInspect(ctx context.Context, opts app.InspectRunOptions) error
	RunWatch(ctx context.Context, opts app.WatchRunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "parknav",
		Short:         "Multi-level parking navigation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("config", "", "Directory to resolve parknav.yaml from")
	rootCmd.PersistentFlags().String("maps-dir", "", "Override the configured maps directory")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: pretty or json")

	// Every persistent flag is overridable by environment, e.g.
	// PARKNAV_MAPS_DIR=/srv/maps parknav inspect -b B1.
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("maps-dir", rootCmd.PersistentFlags().Lookup("maps-dir"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.SetEnvPrefix("PARKNAV")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRouteCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// settings resolves the persistent overrides, letting environment variables
// back any flag the user did not set.
func (c *CLI) settings() app.Settings {
	return app.Settings{
		ConfigDir: viper.GetString("config"),
		MapsDir:   viper.GetString("maps-dir"),
		LogFormat: viper.GetString("log-format"),
	}
}
