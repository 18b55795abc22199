package db

import "context"

// RunStore persists optimization runs and their per-line decisions.
type RunStore interface {
	InsertRun(ctx context.Context, run *OptimizationRun, allocations []RunAllocation) error
	GetRuns(ctx context.Context) ([]OptimizationRun, error)
	GetRunAllocations(ctx context.Context, runID string) ([]RunAllocation, error)
}
