package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/fundplan/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configured data files and run a smoke optimization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.ValidateData(app.Logger, app.Cfg.RequestsFile, app.Cfg.ConstraintsFile)
			if err != nil {
				return err
			}

			fmt.Printf("\nData Validation\n\n")
			for _, check := range report.Checks {
				mark := "ok"
				if !check.Passed {
					mark = "FAIL"
				}
				if check.Detail != "" {
					fmt.Printf("  [%-4s] %s: %s\n", mark, check.Name, check.Detail)
				} else {
					fmt.Printf("  [%-4s] %s\n", mark, check.Name)
				}
			}
			fmt.Println()

			if !report.Passed {
				return fmt.Errorf("data validation failed")
			}

			fmt.Println("All checks passed.")
			fmt.Println()

			return nil
		},
	}
}
