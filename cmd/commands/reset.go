package commands

import (
	"fmt"

	"vr-therapy-platform/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all collections",
	Long: `Remove every collection from the store so the next start reseeds it.
Enrolled patients, session reports and onboarding results are lost.
The audit trail is kept.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("reset deletes all data, rerun with --force to confirm")
		}

		if err := app.Adapter.ClearAll(cmd.Context()); err != nil {
			return err
		}

		logout, _ := cmd.Flags().GetBool("logout")
		if logout {
			app.Sessions.Restore(cmd.Context())
			if err := app.Sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "🧹 All collections cleared.")
		return nil
	}),
}

func init() {
	resetCmd.Flags().Bool("force", false, "confirm deleting all data")
	resetCmd.Flags().Bool("logout", false, "also end the stored session")
}
