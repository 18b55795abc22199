package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/analysis"
	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/dataset"
	"github.com/jakechorley/fundplan/pkg/db"
)

type fakeRunStore struct {
	runs        []db.OptimizationRun
	allocations map[string][]db.RunAllocation
	insertErr   error
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{allocations: make(map[string][]db.RunAllocation)}
}

func (f *fakeRunStore) InsertRun(_ context.Context, run *db.OptimizationRun, allocations []db.RunAllocation) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.runs = append(f.runs, *run)
	f.allocations[run.ID] = allocations
	return nil
}

func (f *fakeRunStore) GetRuns(_ context.Context) ([]db.OptimizationRun, error) {
	return f.runs, nil
}

func (f *fakeRunStore) GetRunAllocations(_ context.Context, runID string) ([]db.RunAllocation, error) {
	return f.allocations[runID], nil
}

func serviceRequests() []model.ResourceRequest {
	return []model.ResourceRequest{
		{ServiceLine: "A", BudgetRequested: 100, MinViableBudget: 50, ExpectedROI: 2, StrategicPriority: 5, SuccessProbability: 0.9},
		{ServiceLine: "B", BudgetRequested: 80, MinViableBudget: 40, ExpectedROI: 3, StrategicPriority: 4, SuccessProbability: 0.8},
		{ServiceLine: "C", BudgetRequested: 60, MinViableBudget: 30, ExpectedROI: 1, StrategicPriority: 3, SuccessProbability: 0.7},
	}
}

func TestRunOptimization_WithoutPersistence(t *testing.T) {
	outcome, err := RunOptimization(context.Background(), nil, zap.NewNop(), serviceRequests(), 150, nil, false)
	require.NoError(t, err)

	require.NotNil(t, outcome.Result)
	assert.Equal(t, model.StatusOptimal, outcome.Result.Status)
	assert.Empty(t, outcome.RunID)
}

func TestRunOptimization_PersistsRunAndAllocations(t *testing.T) {
	store := newFakeRunStore()

	outcome, err := RunOptimization(context.Background(), store, zap.NewNop(), serviceRequests(), 150, nil, true)
	require.NoError(t, err)
	require.NotEmpty(t, outcome.RunID)

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.Equal(t, outcome.RunID, run.ID)
	assert.Equal(t, string(model.StatusOptimal), run.Status)
	assert.InDelta(t, outcome.Result.TotalAllocated, run.TotalAllocated, 1e-9)
	assert.Equal(t, len(outcome.Result.FundedProjects), run.FundedCount)

	allocations := store.allocations[run.ID]
	require.Len(t, allocations, 3)
	for i, req := range serviceRequests() {
		assert.Equal(t, req.ServiceLine, allocations[i].ServiceLine)
		assert.Equal(t, run.ID, allocations[i].RunID)
	}
}

func TestRunOptimization_PersistWithoutStore(t *testing.T) {
	_, err := RunOptimization(context.Background(), nil, zap.NewNop(), serviceRequests(), 150, nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run store")
}

func TestRunOptimization_InvalidInput(t *testing.T) {
	_, err := RunOptimization(context.Background(), nil, zap.NewNop(), nil, 150, nil, false)
	assert.Error(t, err)
}

func TestCompareStrategies(t *testing.T) {
	comparison, err := CompareStrategies(zap.NewNop(), serviceRequests(), 150, nil)
	require.NoError(t, err)

	require.NotNil(t, comparison.Optimized)
	require.NotNil(t, comparison.Equal)
	require.NotNil(t, comparison.Priority)
	require.NotNil(t, comparison.Proportional)
}

func TestRunSensitivity(t *testing.T) {
	points, err := RunSensitivity(zap.NewNop(), serviceRequests(), 150, 0.2, 5, nil)
	require.NoError(t, err)
	assert.Len(t, points, 5)
}

func TestRunScenarios(t *testing.T) {
	scenarios := []analysis.Scenario{
		{Name: "lean", Budget: 90},
		{Name: "base", Budget: 150},
	}

	results, err := RunScenarios(zap.NewNop(), serviceRequests(), scenarios, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "lean", results[0].Name)
	assert.Equal(t, "base", results[1].Name)
}

func TestValidateData_Passes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.WriteSampleData(dir, dataset.DefaultSeed))

	report, err := ValidateData(zap.NewNop(),
		filepath.Join(dir, "resource_requests.csv"),
		filepath.Join(dir, "constraints.csv"))
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Equal(t, 10, report.RequestCount)
	assert.InDelta(t, 18_000_000, report.TotalBudget, 1e-9)
	assert.Greater(t, report.TotalRequested, 0.0)
	require.NotEmpty(t, report.Checks)
	for _, check := range report.Checks {
		assert.True(t, check.Passed, "check %q failed: %s", check.Name, check.Detail)
	}
}

func TestValidateData_NoConstraintsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.WriteSampleData(dir, dataset.DefaultSeed))

	report, err := ValidateData(zap.NewNop(), filepath.Join(dir, "resource_requests.csv"), "")
	require.NoError(t, err)

	assert.True(t, report.Passed)
	// Without a constraints file the smoke run budget is 80% of requested.
	assert.InDelta(t, report.TotalRequested*0.8, report.TotalBudget, 1e-6)
}

func TestValidateData_MissingRequestsFile(t *testing.T) {
	report, err := ValidateData(zap.NewNop(), filepath.Join(t.TempDir(), "absent.csv"), "")
	require.NoError(t, err)

	assert.False(t, report.Passed)
	require.NotEmpty(t, report.Checks)
	assert.Equal(t, "requests file loads", report.Checks[0].Name)
	assert.False(t, report.Checks[0].Passed)
}

func TestValidateData_BadRequests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.csv")
	content := "service_line,budget_requested,min_viable_budget,expected_roi,strategic_priority,success_probability\n" +
		"A,100,200,2,3,0.5\n" // min viable above requested
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	report, err := ValidateData(zap.NewNop(), path, "")
	require.NoError(t, err)

	assert.False(t, report.Passed)
}
