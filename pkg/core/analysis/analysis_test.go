package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/fundplan/pkg/core/model"
)

func sweepRequests() []model.ResourceRequest {
	return []model.ResourceRequest{
		{ServiceLine: "A", BudgetRequested: 100, MinViableBudget: 50, ExpectedROI: 2, StrategicPriority: 5, SuccessProbability: 0.9},
		{ServiceLine: "B", BudgetRequested: 80, MinViableBudget: 40, ExpectedROI: 3, StrategicPriority: 4, SuccessProbability: 0.8},
		{ServiceLine: "C", BudgetRequested: 60, MinViableBudget: 30, ExpectedROI: 1, StrategicPriority: 3, SuccessProbability: 0.7},
	}
}

func TestSensitivity_SweepShape(t *testing.T) {
	points, err := Sensitivity(sweepRequests(), 150, 0.2, 5, nil)
	require.NoError(t, err)
	require.Len(t, points, 5)

	assert.InDelta(t, 120, points[0].Budget, 1e-9)
	assert.InDelta(t, 180, points[4].Budget, 1e-9)
	assert.InDelta(t, -20, points[0].BudgetPctChange, 1e-9)
	assert.InDelta(t, 0, points[2].BudgetPctChange, 1e-9)
	assert.InDelta(t, 20, points[4].BudgetPctChange, 1e-9)

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Budget, points[i-1].Budget, "budgets must ascend")
	}
}

func TestSensitivity_ObjectiveMonotonicInBudget(t *testing.T) {
	points, err := Sensitivity(sweepRequests(), 150, 0.3, 7, nil)
	require.NoError(t, err)

	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].ObjectiveValue+1e-6, points[i-1].ObjectiveValue,
			"objective regressed from budget %.2f to %.2f", points[i-1].Budget, points[i].Budget)
	}
}

func TestSensitivity_SingleStep(t *testing.T) {
	points, err := Sensitivity(sweepRequests(), 150, 0.2, 1, nil)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 120, points[0].Budget, 1e-9)
}

func TestSensitivity_InvalidParameters(t *testing.T) {
	_, err := Sensitivity(sweepRequests(), 0, 0.2, 5, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = Sensitivity(sweepRequests(), 150, -0.1, 5, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = Sensitivity(sweepRequests(), 150, 1.0, 5, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = Sensitivity(sweepRequests(), 150, 0.2, 0, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestRunScenarios_PreservesOrder(t *testing.T) {
	scenarios := []Scenario{
		{Name: "pessimistic", Budget: 90},
		{Name: "base", Budget: 150},
		{Name: "optimistic", Budget: 240},
	}

	results, err := RunScenarios(sweepRequests(), scenarios, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, sc := range scenarios {
		assert.Equal(t, sc.Name, results[i].Name)
		assert.InDelta(t, sc.Budget, results[i].Budget, 1e-9)
		require.NotNil(t, results[i].Result)
		assert.Equal(t, model.StatusOptimal, results[i].Result.Status)
	}

	// A bigger budget can never hurt the objective.
	assert.GreaterOrEqual(t, results[2].Result.ObjectiveValue+1e-6, results[1].Result.ObjectiveValue)
	assert.GreaterOrEqual(t, results[1].Result.ObjectiveValue+1e-6, results[0].Result.ObjectiveValue)
}

func TestRunScenarios_IndependentSolves(t *testing.T) {
	scenarios := []Scenario{
		{Name: "one", Budget: 150},
		{Name: "two", Budget: 150},
	}

	results, err := RunScenarios(sweepRequests(), scenarios, nil)
	require.NoError(t, err)

	// Identical budgets give identical results regardless of position.
	assert.Equal(t, results[0].Result.Allocations, results[1].Result.Allocations)
	assert.Equal(t, results[0].Result.ObjectiveValue, results[1].Result.ObjectiveValue)
}

func TestRunScenarios_Empty(t *testing.T) {
	_, err := RunScenarios(sweepRequests(), nil, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestRunScenarios_BadBudgetAborts(t *testing.T) {
	_, err := RunScenarios(sweepRequests(), []Scenario{{Name: "broken", Budget: -5}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	assert.Contains(t, err.Error(), "broken")
}
