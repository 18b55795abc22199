package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/services"
)

// SensitivityCmd creates the sensitivity command
func SensitivityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep budgets around the base budget and re-solve at each point",
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, _ := cmd.Flags().GetFloat64("budget")
			rangeFraction, _ := cmd.Flags().GetFloat64("range")
			steps, _ := cmd.Flags().GetInt("steps")

			if rangeFraction == 0 {
				rangeFraction = app.Cfg.Sensitivity.RangeFraction
			}
			if steps == 0 {
				steps = app.Cfg.Sensitivity.Steps
			}

			app.Logger.Debug("sensitivity command",
				zap.Float64("range_fraction", rangeFraction),
				zap.Int("steps", steps))

			requests, baseBudget, constraints, err := loadInputs(app, budget)
			if err != nil {
				return err
			}

			points, err := services.RunSensitivity(app.Logger, requests, baseBudget, rangeFraction, steps, constraints)
			if err != nil {
				return err
			}

			fmt.Printf("\nBudget Sensitivity (base %.0f, ±%.0f%%, %d steps)\n\n", baseBudget, rangeFraction*100, steps)
			fmt.Printf("%14s  %8s  %14s  %6s  %16s  %8s\n", "Budget", "Change", "Allocated", "Funded", "Expected Return", "Blended")
			fmt.Printf("%s  %s  %s  %s  %s  %s\n",
				strings.Repeat("-", 14), strings.Repeat("-", 8), strings.Repeat("-", 14),
				strings.Repeat("-", 6), strings.Repeat("-", 16), strings.Repeat("-", 8))

			for _, p := range points {
				fmt.Printf("%14.0f  %+7.1f%%  %14.0f  %6d  %16.0f  %7.2fx\n",
					p.Budget, p.BudgetPctChange, p.TotalAllocated, p.ProjectsFunded, p.TotalExpectedReturn, p.BlendedROI)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Float64("budget", 0, "Override the configured total budget")
	cmd.Flags().Float64("range", 0, "Symmetric sweep range as a fraction of the base budget")
	cmd.Flags().Int("steps", 0, "Number of budgets to solve across the range")

	return cmd
}
