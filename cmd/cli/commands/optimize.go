package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/services"
)

// OptimizeCmd creates the optimize command
func OptimizeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Solve the budget allocation for the configured requests",
		Long:  "Run the MILP optimizer over the configured resource requests, budget and constraints, and print the allocation plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, _ := cmd.Flags().GetFloat64("budget")
			store, _ := cmd.Flags().GetBool("store")

			app.Logger.Debug("optimize command",
				zap.Float64("budget_override", budget),
				zap.Bool("store", store))

			requests, totalBudget, constraints, err := loadInputs(app, budget)
			if err != nil {
				return err
			}

			outcome, err := services.RunOptimization(app.Ctx, app.Database, app.Logger, requests, totalBudget, constraints, store)
			if err != nil {
				return err
			}

			printResult(outcome.Result, requests)

			if outcome.RunID != "" {
				fmt.Printf("Run saved with ID %s\n\n", outcome.RunID)
			}

			return nil
		},
	}

	cmd.Flags().Float64("budget", 0, "Override the configured total budget")
	cmd.Flags().Bool("store", false, "Persist the run to the database")

	return cmd
}

// printResult renders one optimization result as a table, preserving the
// input request order.
func printResult(result *model.OptimizationResult, requests []model.ResourceRequest) {
	fmt.Printf("\nBudget Allocation (%s)\n\n", result.Status)

	if result.Status == model.StatusInfeasible {
		fmt.Println("No feasible allocation exists under the given constraints.")
		fmt.Println()
		return
	}
	if result.Status == model.StatusSuboptimal {
		fmt.Println("Node cap reached; best allocation found so far shown below.")
		fmt.Println()
	}

	lineWidth := len("Service Line")
	for _, req := range requests {
		if len(req.ServiceLine) > lineWidth {
			lineWidth = len(req.ServiceLine)
		}
	}

	fmt.Printf("%-*s  %14s  %14s  %6s  %8s\n", lineWidth, "Service Line", "Requested", "Allocated", "Funded", "ROI")
	fmt.Printf("%s  %s  %s  %s  %s\n",
		strings.Repeat("-", lineWidth), strings.Repeat("-", 14), strings.Repeat("-", 14),
		strings.Repeat("-", 6), strings.Repeat("-", 8))

	for _, req := range requests {
		decision := result.Allocations[req.ServiceLine]
		funded := "no"
		if decision.Funded {
			funded = "yes"
		}
		fmt.Printf("%-*s  %14.0f  %14.0f  %6s  %7.2fx\n",
			lineWidth, req.ServiceLine, decision.Requested, decision.Allocation, funded, decision.ExpectedROI)
	}

	fmt.Println()
	fmt.Printf("Total allocated:    %.0f of %.0f (%.1f%%)\n", result.TotalAllocated, result.TotalBudget, result.BudgetUtilizationPct)
	fmt.Printf("Objective value:    %.0f\n", result.ObjectiveValue)
	fmt.Printf("Expected return:    %.0f\n", result.TotalExpectedReturn)
	fmt.Printf("Blended ROI:        %.2fx\n", result.BlendedROI)
	fmt.Printf("Funded lines:       %d of %d\n\n", len(result.FundedProjects), len(requests))
}
