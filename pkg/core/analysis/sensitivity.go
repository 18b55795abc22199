// Package analysis re-solves the optimizer across budget ranges and named
// scenarios. Every solve is independent and carries no shared state, and the
// returned collections always follow input order.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/optimizer"
)

// SweepPoint is one solve of a sensitivity sweep, in ascending budget order.
type SweepPoint struct {
	Budget              float64
	BudgetPctChange     float64
	TotalAllocated      float64
	ProjectsFunded      int
	ObjectiveValue      float64
	TotalExpectedReturn float64
	BlendedROI          float64
}

// Sensitivity solves the optimizer across steps budgets linearly spaced over
// [baseBudget*(1-rangeFraction), baseBudget*(1+rangeFraction)]. The
// constraint set, if any, is applied to every solve so the sweep stays
// comparable to the base run.
func Sensitivity(requests []model.ResourceRequest, baseBudget, rangeFraction float64, steps int, constraints *model.ConstraintSet) ([]SweepPoint, error) {
	if err := model.ValidateBudget(baseBudget); err != nil {
		return nil, err
	}
	if rangeFraction < 0 || rangeFraction >= 1 {
		return nil, fmt.Errorf("%w: range fraction must be in [0, 1), got %v", model.ErrInvalidInput, rangeFraction)
	}
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1, got %d", model.ErrInvalidInput, steps)
	}

	low := baseBudget * (1 - rangeFraction)
	high := baseBudget * (1 + rangeFraction)

	budgets := make([]float64, steps)
	if steps == 1 {
		budgets[0] = low
	} else {
		floats.Span(budgets, low, high)
	}

	points := make([]SweepPoint, 0, steps)
	for _, budget := range budgets {
		result, err := optimizer.Optimize(requests, budget, constraints)
		if err != nil {
			return nil, fmt.Errorf("failed to solve at budget %.2f: %w", budget, err)
		}

		points = append(points, SweepPoint{
			Budget:              budget,
			BudgetPctChange:     (budget - baseBudget) / baseBudget * 100,
			TotalAllocated:      result.TotalAllocated,
			ProjectsFunded:      len(result.FundedProjects),
			ObjectiveValue:      result.ObjectiveValue,
			TotalExpectedReturn: result.TotalExpectedReturn,
			BlendedROI:          result.BlendedROI,
		})
	}

	return points, nil
}
