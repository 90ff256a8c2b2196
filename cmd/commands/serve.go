package commands

import (
	"vr-therapy-platform/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API consumed by the web app. The stored session is restored
in the background; protected routes answer 503 until it is ready.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New(cmd.Context(), configFile)
		if err != nil {
			return err
		}
		// Run closes the app on shutdown
		app.Run(cmd.Context())
		return nil
	},
}
