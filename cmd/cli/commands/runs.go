package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs [run_id]",
		Short: "List stored optimization runs, or show one run's allocations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == nil {
				return fmt.Errorf("no postgresURL configured; run storage is unavailable")
			}

			if len(args) == 1 {
				return showRun(app, args[0])
			}

			runs, err := app.Database.GetRuns(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("\nNo stored runs.")
				fmt.Println()
				return nil
			}

			fmt.Printf("\nStored Runs (%d)\n\n", len(runs))
			fmt.Printf("%-36s  %-20s  %-11s  %14s  %14s  %6s\n", "ID", "Created", "Status", "Budget", "Allocated", "Funded")
			fmt.Printf("%s  %s  %s  %s  %s  %s\n",
				strings.Repeat("-", 36), strings.Repeat("-", 20), strings.Repeat("-", 11),
				strings.Repeat("-", 14), strings.Repeat("-", 14), strings.Repeat("-", 6))

			for _, r := range runs {
				fmt.Printf("%-36s  %-20s  %-11s  %14.0f  %14.0f  %6d\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Status,
					r.TotalBudget, r.TotalAllocated, r.FundedCount)
			}
			fmt.Println()

			return nil
		},
	}

	return cmd
}

func showRun(app *AppContext, runID string) error {
	allocations, err := app.Database.GetRunAllocations(app.Ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	if len(allocations) == 0 {
		fmt.Printf("\nNo allocations found for run %s\n\n", runID)
		return nil
	}

	fmt.Printf("\nRun %s\n\n", runID)
	fmt.Printf("%-30s  %14s  %14s  %6s\n", "Service Line", "Requested", "Allocated", "Funded")
	fmt.Printf("%s  %s  %s  %s\n",
		strings.Repeat("-", 30), strings.Repeat("-", 14), strings.Repeat("-", 14), strings.Repeat("-", 6))

	for _, a := range allocations {
		funded := "no"
		if a.Funded {
			funded = "yes"
		}
		fmt.Printf("%-30s  %14.0f  %14.0f  %6s\n", a.ServiceLine, a.Requested, a.Allocation, funded)
	}
	fmt.Println()

	return nil
}
