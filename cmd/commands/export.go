package commands

import (
	"fmt"
	"os"

	"vr-therapy-platform/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [patient id]",
	Short: "Export a patient's session reports to xlsx",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
		patientID := args[0]

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = patientID + "-sessions.xlsx"
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}

		if err := app.Exporter.ExportPatientReports(cmd.Context(), patientID, f); err != nil {
			f.Close()
			os.Remove(output)
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "📄 Session reports for %s written to %s\n", patientID, output)
		return nil
	}),
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default <patient id>-sessions.xlsx)")
}
