package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/fundplan/pkg/core/analysis"
	"github.com/jakechorley/fundplan/pkg/core/services"
)

// ScenariosCmd creates the scenarios command
func ScenariosCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "Solve each configured budget scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(app.Cfg.Scenarios) == 0 {
				return fmt.Errorf("no scenarios configured; add a scenarios section to the config file")
			}

			requests, _, constraints, err := loadInputs(app, 0)
			if err != nil {
				return err
			}

			scenarios := make([]analysis.Scenario, 0, len(app.Cfg.Scenarios))
			for _, sc := range app.Cfg.Scenarios {
				scenarios = append(scenarios, analysis.Scenario{Name: sc.Name, Budget: sc.Budget})
			}

			results, err := services.RunScenarios(app.Logger, requests, scenarios, constraints)
			if err != nil {
				return err
			}

			fmt.Printf("\nScenario Results\n\n")
			fmt.Printf("%-16s  %14s  %-11s  %14s  %6s  %8s\n", "Scenario", "Budget", "Status", "Allocated", "Funded", "Blended")
			fmt.Printf("%s  %s  %s  %s  %s  %s\n",
				strings.Repeat("-", 16), strings.Repeat("-", 14), strings.Repeat("-", 11),
				strings.Repeat("-", 14), strings.Repeat("-", 6), strings.Repeat("-", 8))

			for _, r := range results {
				fmt.Printf("%-16s  %14.0f  %-11s  %14.0f  %6d  %7.2fx\n",
					r.Name, r.Budget, r.Result.Status, r.Result.TotalAllocated,
					len(r.Result.FundedProjects), r.Result.BlendedROI)
			}
			fmt.Println()

			return nil
		},
	}
}
