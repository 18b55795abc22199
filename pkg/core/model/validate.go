package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks structural input errors: malformed requests,
// non-positive budgets, duplicate service lines. Callers can test for it with
// errors.Is. Input errors are raised before any solve attempt.
var ErrInvalidInput = errors.New("invalid input")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateRequests checks a request set for structural problems: empty set,
// field-level violations, NaN values, minimum viable budget above the
// requested budget, and duplicate service lines. All failures wrap
// ErrInvalidInput.
func ValidateRequests(requests []ResourceRequest) error {
	if len(requests) == 0 {
		return fmt.Errorf("%w: no resource requests provided", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(requests))
	for i, req := range requests {
		if err := validate.Struct(req); err != nil {
			return fmt.Errorf("%w: request %d (%s): %v", ErrInvalidInput, i, req.ServiceLine, err)
		}

		if math.IsNaN(req.BudgetRequested) || math.IsNaN(req.MinViableBudget) ||
			math.IsNaN(req.ExpectedROI) || math.IsNaN(req.SuccessProbability) {
			return fmt.Errorf("%w: request %d (%s) contains NaN values", ErrInvalidInput, i, req.ServiceLine)
		}

		if req.MinViableBudget > req.BudgetRequested {
			return fmt.Errorf("%w: request %d (%s): min viable budget %.2f exceeds requested budget %.2f",
				ErrInvalidInput, i, req.ServiceLine, req.MinViableBudget, req.BudgetRequested)
		}

		if seen[req.ServiceLine] {
			return fmt.Errorf("%w: duplicate service line %q", ErrInvalidInput, req.ServiceLine)
		}
		seen[req.ServiceLine] = true
	}

	return nil
}

// ValidateBudget checks that a total budget is a positive, finite number.
func ValidateBudget(totalBudget float64) error {
	if math.IsNaN(totalBudget) || math.IsInf(totalBudget, 0) {
		return fmt.Errorf("%w: total budget must be finite, got %v", ErrInvalidInput, totalBudget)
	}
	if totalBudget <= 0 {
		return fmt.Errorf("%w: total budget must be positive, got %.2f", ErrInvalidInput, totalBudget)
	}
	return nil
}

// ValidateConstraints checks the recognized constraint keys. Unrecognized
// concerns never reach this type, so only value ranges are checked here.
func ValidateConstraints(constraints *ConstraintSet) error {
	if constraints == nil {
		return nil
	}
	if constraints.MinFundedProjects != nil && *constraints.MinFundedProjects < 0 {
		return fmt.Errorf("%w: min funded projects must be >= 0, got %d", ErrInvalidInput, *constraints.MinFundedProjects)
	}
	if constraints.MaxPerService != nil {
		m := *constraints.MaxPerService
		if math.IsNaN(m) || m <= 0 {
			return fmt.Errorf("%w: max per service must be positive, got %v", ErrInvalidInput, m)
		}
	}
	return nil
}
