package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/optimizer"
	"github.com/jakechorley/fundplan/pkg/db"
)

// OptimizationOutcome is the result of the optimize service: the solve
// result plus the ID of the persisted run, when persistence was requested.
type OptimizationOutcome struct {
	Result *model.OptimizationResult
	RunID  string
}

// RunOptimization solves the allocation problem and optionally persists the
// run. Infeasible and suboptimal solves are persisted too; only input errors
// abort before solving.
func RunOptimization(ctx context.Context, store db.RunStore, logger *zap.Logger, requests []model.ResourceRequest, totalBudget float64, constraints *model.ConstraintSet, persist bool) (*OptimizationOutcome, error) {
	logger.Info("Running optimization",
		zap.Int("request_count", len(requests)),
		zap.Float64("total_budget", totalBudget),
		zap.Bool("persist", persist))

	result, err := optimizer.Optimize(requests, totalBudget, constraints)
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}

	logger.Info("Optimization finished",
		zap.String("status", string(result.Status)),
		zap.Float64("total_allocated", result.TotalAllocated),
		zap.Float64("objective_value", result.ObjectiveValue),
		zap.Int("funded_count", len(result.FundedProjects)))

	outcome := &OptimizationOutcome{Result: result}

	if !persist {
		return outcome, nil
	}
	if store == nil {
		return nil, fmt.Errorf("persistence requested but no run store is configured")
	}

	runID := uuid.NewString()
	run := &db.OptimizationRun{
		ID:                   runID,
		CreatedAt:            time.Now().UTC(),
		Status:               string(result.Status),
		TotalBudget:          result.TotalBudget,
		TotalAllocated:       result.TotalAllocated,
		ObjectiveValue:       result.ObjectiveValue,
		BudgetUtilizationPct: result.BudgetUtilizationPct,
		TotalExpectedReturn:  result.TotalExpectedReturn,
		BlendedROI:           result.BlendedROI,
		FundedCount:          len(result.FundedProjects),
	}

	allocations := make([]db.RunAllocation, 0, len(requests))
	for _, req := range requests {
		decision := result.Allocations[req.ServiceLine]
		allocations = append(allocations, db.RunAllocation{
			ID:                uuid.NewString(),
			RunID:             runID,
			ServiceLine:       req.ServiceLine,
			Allocation:        decision.Allocation,
			Funded:            decision.Funded,
			Requested:         decision.Requested,
			ExpectedROI:       decision.ExpectedROI,
			StrategicPriority: decision.StrategicPriority,
		})
	}

	if err := store.InsertRun(ctx, run, allocations); err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	logger.Info("Run persisted", zap.String("run_id", runID))
	outcome.RunID = runID

	return outcome, nil
}
