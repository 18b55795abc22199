// Package optimizer solves the budget-allocation problem as a small
// mixed-integer linear program: a continuous allocation and a binary funded
// indicator per service line, maximizing priority-weighted expected return
// under a total budget and optional policy constraints.
//
// Solving is LP relaxation plus branch-and-bound over the funded binaries.
// The whole pipeline is deterministic and free of side effects; solver-level
// outcomes (infeasible, node cap hit) are reported through the result status,
// never as Go errors. Only structural input problems return an error, and
// those are detected before any solve attempt.
package optimizer

import (
	"github.com/jakechorley/fundplan/pkg/core/model"
)

// Optimize computes the allocation that maximizes
// sum(allocation_i * expectedROI_i * strategicPriority_i) subject to the
// total budget, the per-line min-viable/requested coupling, and the optional
// constraint set. Request order is preserved in the result's funded and
// unfunded project lists.
func Optimize(requests []model.ResourceRequest, totalBudget float64, constraints *model.ConstraintSet) (*model.OptimizationResult, error) {
	m, err := buildModel(requests, totalBudget, constraints)
	if err != nil {
		return nil, err
	}

	sol := newSolver().solve(m)

	return extractResult(m.requests, totalBudget, sol), nil
}
