package commands

import (
	"errors"
	"fmt"
	"strings"

	"vr-therapy-platform/cmd/bootstrap"
	"vr-therapy-platform/internal/delivery/tui"

	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard [patient id]",
	Short: "Run the onboarding questionnaire for a patient",
	Long: `Walk through the onboarding questionnaire in the terminal. On completion
the result is saved and the patient is marked as onboarded.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
		result, err := tui.RunOnboardingTUI(cmd.Context(), app.Onboarding, args[0])
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "❌ Onboarding cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Onboarding saved for %s - score %d\n", result.PatientID, result.TotalScore)
		if len(result.RecommendedScenes) > 0 {
			fmt.Fprintf(out, "Recommended scenes: %s\n", strings.Join(result.RecommendedScenes, ", "))
		}
		return nil
	}),
}
