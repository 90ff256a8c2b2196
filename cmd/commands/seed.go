package commands

import (
	"fmt"

	"vr-therapy-platform/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store if it is empty",
	Long: `Populate an empty store from the configured seed source. A store that is
already seeded is left unchanged.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
		if err := app.Adapter.EnsureSeeded(cmd.Context()); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Store is seeded.")
		return nil
	}),
}
