package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/services"
)

// CompareCmd creates the compare command
func CompareCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the optimizer against the baseline strategies",
		Long:  "Run the optimizer plus the equal-split, priority-greedy and proportional baselines over the same inputs and print a side-by-side summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, _ := cmd.Flags().GetFloat64("budget")

			app.Logger.Debug("compare command", zap.Float64("budget_override", budget))

			requests, totalBudget, constraints, err := loadInputs(app, budget)
			if err != nil {
				return err
			}

			comparison, err := services.CompareStrategies(app.Logger, requests, totalBudget, constraints)
			if err != nil {
				return err
			}

			fmt.Printf("\nStrategy Comparison (budget %.0f)\n\n", totalBudget)
			fmt.Printf("%-14s  %14s  %16s  %10s\n", "Strategy", "Allocated", "Expected Return", "Blended")
			fmt.Printf("%s  %s  %s  %s\n",
				strings.Repeat("-", 14), strings.Repeat("-", 14), strings.Repeat("-", 16), strings.Repeat("-", 10))

			opt := comparison.Optimized
			fmt.Printf("%-14s  %14.0f  %16.0f  %9.2fx\n", "Optimized", opt.TotalAllocated, opt.TotalExpectedReturn, opt.BlendedROI)
			for _, s := range []*struct {
				name                         string
				allocated, expected, blended float64
			}{
				{"Equal", comparison.Equal.TotalAllocated, comparison.Equal.TotalExpectedReturn, comparison.Equal.BlendedROI},
				{"Priority", comparison.Priority.TotalAllocated, comparison.Priority.TotalExpectedReturn, comparison.Priority.BlendedROI},
				{"Proportional", comparison.Proportional.TotalAllocated, comparison.Proportional.TotalExpectedReturn, comparison.Proportional.BlendedROI},
			} {
				fmt.Printf("%-14s  %14.0f  %16.0f  %9.2fx\n", s.name, s.allocated, s.expected, s.blended)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Float64("budget", 0, "Override the configured total budget")

	return cmd
}
