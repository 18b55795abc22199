package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/fundplan/pkg/core/model"
)

func TestGenerateRequests_Deterministic(t *testing.T) {
	first := GenerateRequests(DefaultSeed)
	second := GenerateRequests(DefaultSeed)
	assert.Equal(t, first, second)

	other := GenerateRequests(7)
	assert.NotEqual(t, first, other)
}

func TestGenerateRequests_Valid(t *testing.T) {
	requests := GenerateRequests(DefaultSeed)
	require.Len(t, requests, 10)
	assert.NoError(t, model.ValidateRequests(requests))
}

func TestWriteAndLoadSampleData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSampleData(dir, DefaultSeed))

	requests, err := LoadRequests(filepath.Join(dir, "resource_requests.csv"))
	require.NoError(t, err)
	assert.Equal(t, GenerateRequests(DefaultSeed), requests)

	cf, err := LoadConstraints(filepath.Join(dir, "constraints.csv"))
	require.NoError(t, err)
	assert.InDelta(t, float64(SampleTotalBudget), cf.TotalBudget, 1e-9)
	require.NotNil(t, cf.Constraints.MaxPerService)
	assert.InDelta(t, 4_000_000, *cf.Constraints.MaxPerService, 1e-9)
	require.NotNil(t, cf.Constraints.MinFundedProjects)
	assert.Equal(t, 5, *cf.Constraints.MinFundedProjects)
}

func TestLoadRequests_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "service_line,budget_requested\nA,100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadRequests(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestLoadRequests_IgnoresExtraColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.csv")
	content := "service_line,budget_requested,min_viable_budget,expected_roi,strategic_priority,success_probability,rationale\n" +
		"Brand Strategy,2200000,1200000,2.4,4,0.8,premium positioning\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	requests, err := LoadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Brand Strategy", requests[0].ServiceLine)
	assert.InDelta(t, 2_200_000, requests[0].BudgetRequested, 1e-9)
	assert.Equal(t, 4, requests[0].StrategicPriority)
}

func TestLoadRequests_BadNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badnum.csv")
	content := "service_line,budget_requested,min_viable_budget,expected_roi,strategic_priority,success_probability\n" +
		"A,not-a-number,50,2,3,0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadRequests(path)
	assert.Error(t, err)
}

func TestLoadConstraints_IgnoresUnknownTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.csv")
	content := "constraint_type,value,unit,description\n" +
		"total_budget,18000000,USD,Total budget\n" +
		"max_headcount_growth,25,Percentage,Ignored by the optimizer\n" +
		"min_cash_runway_months,18,Months,Also ignored\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cf, err := LoadConstraints(path)
	require.NoError(t, err)
	assert.InDelta(t, 18_000_000, cf.TotalBudget, 1e-9)
	assert.Nil(t, cf.Constraints.MaxPerService)
	assert.Nil(t, cf.Constraints.MinFundedProjects)
	assert.False(t, cf.Constraints.PrioritizeHighPriority)
}

func TestSaveRequests_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.csv")
	original := []model.ResourceRequest{
		{ServiceLine: "A", BudgetRequested: 100.5, MinViableBudget: 50.25, ExpectedROI: 2.8, StrategicPriority: 5, SuccessProbability: 0.85},
		{ServiceLine: "B", BudgetRequested: 80, MinViableBudget: 40, ExpectedROI: 3.2, StrategicPriority: 4, SuccessProbability: 0.9},
	}

	require.NoError(t, SaveRequests(path, original))
	loaded, err := LoadRequests(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
