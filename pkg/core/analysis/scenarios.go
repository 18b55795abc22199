package analysis

import (
	"fmt"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/optimizer"
)

// Scenario names a budget to solve under, e.g. "pessimistic" or "optimistic".
// Scenarios are an ordered slice rather than a map so results come back in
// the order the caller defined them.
type Scenario struct {
	Name   string
	Budget float64
}

// ScenarioResult pairs a scenario with its full optimization result.
type ScenarioResult struct {
	Name   string
	Budget float64
	Result *model.OptimizationResult
}

// RunScenarios solves once per scenario. Each solve is independent; a
// validation failure on any scenario budget aborts the whole run.
func RunScenarios(requests []model.ResourceRequest, scenarios []Scenario, constraints *model.ConstraintSet) ([]ScenarioResult, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenarios provided", model.ErrInvalidInput)
	}

	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		result, err := optimizer.Optimize(requests, sc.Budget, constraints)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		results = append(results, ScenarioResult{
			Name:   sc.Name,
			Budget: sc.Budget,
			Result: result,
		})
	}

	return results, nil
}
