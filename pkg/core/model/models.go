package model

// Status reports how an optimization run terminated
type Status string

const (
	// StatusOptimal means the branch-and-bound search was exhausted with a feasible incumbent
	StatusOptimal Status = "Optimal"

	// StatusInfeasible means the root relaxation has no feasible point
	StatusInfeasible Status = "Infeasible"

	// StatusSuboptimal means the node-exploration cap was hit; the best incumbent found so far is returned
	StatusSuboptimal Status = "Suboptimal"

	// StatusError means the solver failed for a reason other than infeasibility
	StatusError Status = "Error"
)

// HighPriorityThreshold is the strategic priority at or above which a service
// line counts as high priority for the PrioritizeHighPriority preference.
const HighPriorityThreshold = 4

// ResourceRequest is a funding request from a single service line.
// Records are immutable once loaded; slice order is preserved end to end.
type ResourceRequest struct {
	// ServiceLine uniquely identifies the requesting line
	ServiceLine string `validate:"required"`

	// BudgetRequested is the full amount asked for
	BudgetRequested float64 `validate:"required,gt=0"`

	// MinViableBudget is the smallest allocation worth funding at all
	MinViableBudget float64 `validate:"required,gt=0"`

	// ExpectedROI is a multiplicative return factor (2.0 = returns twice the spend)
	ExpectedROI float64 `validate:"gte=0"`

	// StrategicPriority weights the objective, 1 (lowest) to 5 (highest)
	StrategicPriority int `validate:"required,min=1,max=5"`

	// SuccessProbability is informational only; the solver does not use it
	SuccessProbability float64 `validate:"gte=0,lte=1"`
}

// ConstraintSet holds the optional policy constraints. A nil set means no
// additional constraints beyond the budget itself.
//
// PrioritizeHighPriority adds an objective bonus on the funded indicator of
// every line with StrategicPriority >= HighPriorityThreshold, so ties and
// near-ties break toward funding high-priority lines. (An earlier version of
// this system accepted the flag but compiled it into a tautological
// allocation >= 0 constraint; the bonus replaces that dead behaviour.)
type ConstraintSet struct {
	MinFundedProjects      *int
	MaxPerService          *float64
	PrioritizeHighPriority bool
}

// AllocationDecision is the per-line outcome of a solve, with the request
// metadata echoed for consumers that only hold the result.
//
// Invariant: Funded == false implies Allocation == 0, and Funded == true
// implies MinViableBudget <= Allocation <= BudgetRequested.
type AllocationDecision struct {
	Allocation        float64
	Funded            bool
	Requested         float64
	ExpectedROI       float64
	StrategicPriority int
}

// OptimizationResult is the canonical output of a single solve. It is built
// fresh per call and never mutated after return.
type OptimizationResult struct {
	Status      Status
	TotalBudget float64

	// Allocations maps service line to its decision
	Allocations map[string]AllocationDecision

	// FundedProjects and UnfundedProjects preserve the input request order
	FundedProjects   []string
	UnfundedProjects []string

	TotalAllocated       float64
	ObjectiveValue       float64
	BudgetUtilizationPct float64
	TotalExpectedReturn  float64

	// BlendedROI is TotalExpectedReturn / TotalAllocated, or 0 when nothing
	// was allocated
	BlendedROI float64
}
