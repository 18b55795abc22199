package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/fundplan/pkg/db"
)

// InsertRun inserts a run record and its per-line allocations in a single
// transaction.
func (d *DB) InsertRun(ctx context.Context, run *db.OptimizationRun, allocations []db.RunAllocation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO optimization_run (
			id, created_at, status, total_budget, total_allocated,
			objective_value, budget_utilization_pct, total_expected_return,
			blended_roi, funded_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, run.ID, run.CreatedAt, run.Status, run.TotalBudget, run.TotalAllocated,
		run.ObjectiveValue, run.BudgetUtilizationPct, run.TotalExpectedReturn,
		run.BlendedROI, run.FundedCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO run_allocation (
				id, run_id, service_line, allocation, funded,
				requested, expected_roi, strategic_priority
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.RunID, a.ServiceLine, a.Allocation, a.Funded,
			a.Requested, a.ExpectedROI, a.StrategicPriority)
		if err != nil {
			return fmt.Errorf("failed to insert allocation for %s: %w", a.ServiceLine, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRuns retrieves all run records, newest first.
func (d *DB) GetRuns(ctx context.Context) ([]db.OptimizationRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, status, total_budget, total_allocated,
		       objective_value, budget_utilization_pct, total_expected_return,
		       blended_roi, funded_count
		FROM optimization_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.OptimizationRun
	for rows.Next() {
		var r db.OptimizationRun
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Status, &r.TotalBudget,
			&r.TotalAllocated, &r.ObjectiveValue, &r.BudgetUtilizationPct,
			&r.TotalExpectedReturn, &r.BlendedROI, &r.FundedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunAllocations retrieves the per-line decisions of one run.
func (d *DB) GetRunAllocations(ctx context.Context, runID string) ([]db.RunAllocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, service_line, allocation, funded,
		       requested, expected_roi, strategic_priority
		FROM run_allocation
		WHERE run_id = $1
		ORDER BY service_line
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.RunAllocation
	for rows.Next() {
		var a db.RunAllocation
		if err := rows.Scan(&a.ID, &a.RunID, &a.ServiceLine, &a.Allocation,
			&a.Funded, &a.Requested, &a.ExpectedROI, &a.StrategicPriority); err != nil {
			return nil, fmt.Errorf("failed to scan run allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run allocations: %w", err)
	}

	return allocations, nil
}
