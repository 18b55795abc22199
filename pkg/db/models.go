package db

import "time"

// OptimizationRun is a persisted record of one optimizer invocation.
type OptimizationRun struct {
	ID                   string
	CreatedAt            time.Time
	Status               string
	TotalBudget          float64
	TotalAllocated       float64
	ObjectiveValue       float64
	BudgetUtilizationPct float64
	TotalExpectedReturn  float64
	BlendedROI           float64
	FundedCount          int
}

// RunAllocation is one service line's decision within a persisted run.
type RunAllocation struct {
	ID                string
	RunID             string
	ServiceLine       string
	Allocation        float64
	Funded            bool
	Requested         float64
	ExpectedROI       float64
	StrategicPriority int
}
