package commands

import (
	"context"

	"vr-therapy-platform/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "vr-therapy",
	Short: "VR therapy platform for autism therapy sessions",
	Long: `vr-therapy serves the API behind the VR therapy web app and provides
maintenance commands for the local store: seeding, resetting, exporting
session reports and running onboarding from the terminal.`,
	SilenceUsage: true,
}

// withApp builds the application for a command and closes it afterwards
func withApp(fn func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New(cmd.Context(), configFile)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(cmd, args, app)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = version
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", ".env", "path to the env config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}
