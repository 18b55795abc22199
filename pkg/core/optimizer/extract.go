package optimizer

import (
	"github.com/jakechorley/fundplan/pkg/core/model"
)

// extractResult maps a raw variable assignment onto the canonical result
// structure and computes the derived metrics. Solves that produced no
// assignment (infeasible, errored, capped before any incumbent) yield a
// fully zeroed result carrying only the status.
func extractResult(requests []model.ResourceRequest, totalBudget float64, sol rawSolution) *model.OptimizationResult {
	result := &model.OptimizationResult{
		Status:           sol.status,
		TotalBudget:      totalBudget,
		Allocations:      make(map[string]model.AllocationDecision, len(requests)),
		FundedProjects:   []string{},
		UnfundedProjects: []string{},
	}

	for i, req := range requests {
		var allocation float64
		var funded bool

		if sol.alloc != nil {
			funded = sol.funded[i] > 0.5
			if funded {
				allocation = sol.alloc[i]
				if allocation < 0 {
					allocation = 0
				}
			}
		}

		result.Allocations[req.ServiceLine] = model.AllocationDecision{
			Allocation:        allocation,
			Funded:            funded,
			Requested:         req.BudgetRequested,
			ExpectedROI:       req.ExpectedROI,
			StrategicPriority: req.StrategicPriority,
		}

		if funded {
			result.FundedProjects = append(result.FundedProjects, req.ServiceLine)
		} else {
			result.UnfundedProjects = append(result.UnfundedProjects, req.ServiceLine)
		}

		result.TotalAllocated += allocation
		result.TotalExpectedReturn += allocation * req.ExpectedROI
	}

	result.ObjectiveValue = sol.objective
	result.BudgetUtilizationPct = result.TotalAllocated / totalBudget * 100

	if result.TotalAllocated > 0 {
		result.BlendedROI = result.TotalExpectedReturn / result.TotalAllocated
	}

	return result
}
