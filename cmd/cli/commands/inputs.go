package commands

import (
	"fmt"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/dataset"
)

// loadInputs reads the request set and resolves the budget and constraint
// set from the configuration. A positive budgetOverride (from a command
// flag) wins over the configured total budget.
func loadInputs(app *AppContext, budgetOverride float64) ([]model.ResourceRequest, float64, *model.ConstraintSet, error) {
	requests, err := dataset.LoadRequests(app.Cfg.RequestsFile)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to load requests: %w", err)
	}

	budget := app.Cfg.TotalBudget
	if budgetOverride > 0 {
		budget = budgetOverride
	}

	var constraints *model.ConstraintSet
	if c := app.Cfg.Constraints; c != nil {
		constraints = &model.ConstraintSet{
			MinFundedProjects:      c.MinFundedProjects,
			MaxPerService:          c.MaxPerService,
			PrioritizeHighPriority: c.PrioritizeHighPriority,
		}
	}

	return requests, budget, constraints, nil
}
