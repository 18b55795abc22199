package optimizer

import (
	"github.com/jakechorley/fundplan/pkg/core/model"
)

// highPriorityBonusRate scales the funded-indicator bonus applied when
// PrioritizeHighPriority is set. The bonus per high-priority line is
// rate * totalBudget * priority, small enough that it only breaks ties
// rather than overriding real ROI differences.
const highPriorityBonusRate = 0.01

// milpModel is the variable/constraint system for one solve.
//
// Variables are laid out as x = [allocation_0..allocation_{n-1},
// funded_0..funded_{n-1}], all nonnegative. Every constraint is a dense
// row of Gx <= h; the per-node 0/1 bounds on the funded variables are
// appended by the solver when it relaxes each branch-and-bound node.
type milpModel struct {
	requests    []model.ResourceRequest
	totalBudget float64

	// objective holds maximization coefficients for all 2n variables
	objective []float64

	// g and h are the static constraint rows shared by every node
	g [][]float64
	h []float64
}

func (m *milpModel) lineCount() int { return len(m.requests) }

// buildModel validates the inputs and translates them into the MILP. All
// validation failures surface here, before any solve attempt.
func buildModel(requests []model.ResourceRequest, totalBudget float64, constraints *model.ConstraintSet) (*milpModel, error) {
	if err := model.ValidateRequests(requests); err != nil {
		return nil, err
	}
	if err := model.ValidateBudget(totalBudget); err != nil {
		return nil, err
	}
	if err := model.ValidateConstraints(constraints); err != nil {
		return nil, err
	}

	n := len(requests)
	m := &milpModel{
		requests:    append([]model.ResourceRequest(nil), requests...),
		totalBudget: totalBudget,
		objective:   make([]float64, 2*n),
	}

	// Maximize sum(allocation_i * roi_i * priority_i)
	for i, req := range m.requests {
		m.objective[i] = req.ExpectedROI * float64(req.StrategicPriority)
	}

	if constraints != nil && constraints.PrioritizeHighPriority {
		for i, req := range m.requests {
			if req.StrategicPriority >= model.HighPriorityThreshold {
				m.objective[n+i] = highPriorityBonusRate * totalBudget * float64(req.StrategicPriority)
			}
		}
	}

	// sum(allocation_i) <= totalBudget
	budgetRow := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		budgetRow[i] = 1
	}
	m.addRow(budgetRow, totalBudget)

	// Couple each allocation to its funded indicator:
	//   allocation_i - requested_i * funded_i <= 0
	//   min_viable_i * funded_i - allocation_i <= 0
	for i, req := range m.requests {
		upper := make([]float64, 2*n)
		upper[i] = 1
		upper[n+i] = -req.BudgetRequested
		m.addRow(upper, 0)

		lower := make([]float64, 2*n)
		lower[i] = -1
		lower[n+i] = req.MinViableBudget
		m.addRow(lower, 0)
	}

	if constraints != nil && constraints.MaxPerService != nil {
		for i := 0; i < n; i++ {
			row := make([]float64, 2*n)
			row[i] = 1
			m.addRow(row, *constraints.MaxPerService)
		}
	}

	if constraints != nil && constraints.MinFundedProjects != nil && *constraints.MinFundedProjects > 0 {
		// sum(funded_i) >= k, expressed as -sum(funded_i) <= -k
		row := make([]float64, 2*n)
		for i := 0; i < n; i++ {
			row[n+i] = -1
		}
		m.addRow(row, -float64(*constraints.MinFundedProjects))
	}

	return m, nil
}

func (m *milpModel) addRow(coeffs []float64, bound float64) {
	m.g = append(m.g, coeffs)
	m.h = append(m.h, bound)
}
