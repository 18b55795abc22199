// Package strategy computes deterministic, non-optimizing baseline
// allocations over the same inputs as the optimizer, in a shared summary
// shape so the optimized result can be compared like for like.
package strategy

import (
	"sort"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/optimizer"
)

// LineAllocation is one service line's share under a baseline strategy.
type LineAllocation struct {
	Allocation  float64
	ExpectedROI float64
}

// Summary is the common result shape for all baseline strategies.
type Summary struct {
	Name                string
	Allocations         map[string]LineAllocation
	TotalAllocated      float64
	TotalExpectedReturn float64
	BlendedROI          float64
}

// Comparison bundles the optimized result with the three baselines.
type Comparison struct {
	Optimized    *model.OptimizationResult
	Equal        *Summary
	Priority     *Summary
	Proportional *Summary
}

// Compare runs the optimizer and all three baselines over the same request
// set and budget.
func Compare(requests []model.ResourceRequest, totalBudget float64, constraints *model.ConstraintSet) (*Comparison, error) {
	optimized, err := optimizer.Optimize(requests, totalBudget, constraints)
	if err != nil {
		return nil, err
	}

	// The baselines share the optimizer's input validation, so any error
	// would already have surfaced above.
	equal, _ := EqualSplit(requests, totalBudget)
	priority, _ := PriorityGreedy(requests, totalBudget)
	proportional, _ := Proportional(requests, totalBudget)

	return &Comparison{
		Optimized:    optimized,
		Equal:        equal,
		Priority:     priority,
		Proportional: proportional,
	}, nil
}

// EqualSplit gives every line totalBudget/n, capped at its requested budget.
// When some requests are smaller than the equal share the leftover is not
// redistributed, so the total allocated can fall short of the budget.
func EqualSplit(requests []model.ResourceRequest, totalBudget float64) (*Summary, error) {
	if err := validateInputs(requests, totalBudget); err != nil {
		return nil, err
	}

	share := totalBudget / float64(len(requests))
	summary := newSummary("Equal", len(requests))

	for _, req := range requests {
		allocation := share
		if req.BudgetRequested < allocation {
			allocation = req.BudgetRequested
		}
		summary.add(req, allocation)
	}

	summary.finalize()
	return summary, nil
}

// PriorityGreedy funds lines in descending strategic priority (stable:
// original order breaks ties), allocating min(requested, remaining) while
// the remaining budget still covers the line's minimum viable budget.
func PriorityGreedy(requests []model.ResourceRequest, totalBudget float64) (*Summary, error) {
	if err := validateInputs(requests, totalBudget); err != nil {
		return nil, err
	}

	ordered := append([]model.ResourceRequest(nil), requests...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StrategicPriority > ordered[j].StrategicPriority
	})

	summary := newSummary("Priority", len(requests))
	remaining := totalBudget

	for _, req := range ordered {
		var allocation float64
		if remaining >= req.MinViableBudget {
			allocation = req.BudgetRequested
			if remaining < allocation {
				allocation = remaining
			}
			remaining -= allocation
		}
		summary.add(req, allocation)
	}

	summary.finalize()
	return summary, nil
}

// Proportional splits the budget in proportion to each line's requested
// amount, capped at the requested amount. The full budget is spent exactly
// when no line's proportional share exceeds its request.
func Proportional(requests []model.ResourceRequest, totalBudget float64) (*Summary, error) {
	if err := validateInputs(requests, totalBudget); err != nil {
		return nil, err
	}

	var totalRequested float64
	for _, req := range requests {
		totalRequested += req.BudgetRequested
	}

	summary := newSummary("Proportional", len(requests))

	for _, req := range requests {
		allocation := totalBudget * (req.BudgetRequested / totalRequested)
		if req.BudgetRequested < allocation {
			allocation = req.BudgetRequested
		}
		summary.add(req, allocation)
	}

	summary.finalize()
	return summary, nil
}

func validateInputs(requests []model.ResourceRequest, totalBudget float64) error {
	if err := model.ValidateRequests(requests); err != nil {
		return err
	}
	return model.ValidateBudget(totalBudget)
}

func newSummary(name string, n int) *Summary {
	return &Summary{
		Name:        name,
		Allocations: make(map[string]LineAllocation, n),
	}
}

func (s *Summary) add(req model.ResourceRequest, allocation float64) {
	s.Allocations[req.ServiceLine] = LineAllocation{
		Allocation:  allocation,
		ExpectedROI: req.ExpectedROI,
	}
	s.TotalAllocated += allocation
	s.TotalExpectedReturn += allocation * req.ExpectedROI
}

func (s *Summary) finalize() {
	if s.TotalAllocated > 0 {
		s.BlendedROI = s.TotalExpectedReturn / s.TotalAllocated
	}
}
