package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/analysis"
	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/strategy"
)

// CompareStrategies runs the optimizer and the three deterministic baselines
// over the same inputs.
func CompareStrategies(logger *zap.Logger, requests []model.ResourceRequest, totalBudget float64, constraints *model.ConstraintSet) (*strategy.Comparison, error) {
	logger.Info("Comparing allocation strategies",
		zap.Int("request_count", len(requests)),
		zap.Float64("total_budget", totalBudget))

	comparison, err := strategy.Compare(requests, totalBudget, constraints)
	if err != nil {
		return nil, fmt.Errorf("strategy comparison failed: %w", err)
	}

	logger.Info("Strategy comparison finished",
		zap.Float64("optimized_return", comparison.Optimized.TotalExpectedReturn),
		zap.Float64("equal_return", comparison.Equal.TotalExpectedReturn),
		zap.Float64("priority_return", comparison.Priority.TotalExpectedReturn),
		zap.Float64("proportional_return", comparison.Proportional.TotalExpectedReturn))

	return comparison, nil
}

// RunSensitivity sweeps budgets around the base budget and re-solves at each
// point.
func RunSensitivity(logger *zap.Logger, requests []model.ResourceRequest, baseBudget, rangeFraction float64, steps int, constraints *model.ConstraintSet) ([]analysis.SweepPoint, error) {
	logger.Info("Running sensitivity analysis",
		zap.Float64("base_budget", baseBudget),
		zap.Float64("range_fraction", rangeFraction),
		zap.Int("steps", steps))

	points, err := analysis.Sensitivity(requests, baseBudget, rangeFraction, steps, constraints)
	if err != nil {
		return nil, fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	logger.Debug("Sensitivity analysis finished", zap.Int("points", len(points)))

	return points, nil
}

// RunScenarios solves once per named budget scenario, in input order.
func RunScenarios(logger *zap.Logger, requests []model.ResourceRequest, scenarios []analysis.Scenario, constraints *model.ConstraintSet) ([]analysis.ScenarioResult, error) {
	logger.Info("Running scenarios", zap.Int("scenario_count", len(scenarios)))

	results, err := analysis.RunScenarios(requests, scenarios, constraints)
	if err != nil {
		return nil, fmt.Errorf("scenario run failed: %w", err)
	}

	for _, r := range results {
		logger.Debug("Scenario solved",
			zap.String("scenario", r.Name),
			zap.Float64("budget", r.Budget),
			zap.String("status", string(r.Result.Status)))
	}

	return results, nil
}
