package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/pkg/core/model"
	"github.com/jakechorley/fundplan/pkg/core/optimizer"
	"github.com/jakechorley/fundplan/pkg/dataset"
)

// DataCheck is one named pass/fail check in a data validation report.
type DataCheck struct {
	Name   string
	Passed bool
	Detail string
}

// DataValidationReport summarizes the readiness checks over the data files:
// whether they load, whether the request set passes input validation, the
// budget-versus-requested gap, and a smoke optimization run.
type DataValidationReport struct {
	Checks         []DataCheck
	RequestCount   int
	TotalRequested float64
	TotalBudget    float64
	Passed         bool
}

// ValidateData loads the data files and runs the readiness checks.
// constraintsPath may be empty, in which case the smoke run uses 80% of the
// total requested budget.
func ValidateData(logger *zap.Logger, requestsPath, constraintsPath string) (*DataValidationReport, error) {
	logger.Info("Validating data files",
		zap.String("requests", requestsPath),
		zap.String("constraints", constraintsPath))

	report := &DataValidationReport{Passed: true}
	addCheck := func(name string, passed bool, detail string) {
		report.Checks = append(report.Checks, DataCheck{Name: name, Passed: passed, Detail: detail})
		if !passed {
			report.Passed = false
		}
	}

	requests, err := dataset.LoadRequests(requestsPath)
	if err != nil {
		addCheck("requests file loads", false, err.Error())
		return report, nil
	}
	report.RequestCount = len(requests)
	addCheck("requests file loads", true, fmt.Sprintf("%d records", len(requests)))

	if err := model.ValidateRequests(requests); err != nil {
		addCheck("requests pass input validation", false, err.Error())
		return report, nil
	}
	addCheck("requests pass input validation", true, "")

	for _, req := range requests {
		report.TotalRequested += req.BudgetRequested
	}

	var constraints *model.ConstraintSet
	totalBudget := report.TotalRequested * 0.8
	if constraintsPath != "" {
		cf, err := dataset.LoadConstraints(constraintsPath)
		if err != nil {
			addCheck("constraints file loads", false, err.Error())
			return report, nil
		}
		addCheck("constraints file loads", true, "")

		if cf.TotalBudget > 0 {
			totalBudget = cf.TotalBudget
		}
		constraints = &cf.Constraints
	}
	report.TotalBudget = totalBudget

	gap := report.TotalRequested - totalBudget
	direction := "under"
	if gap > 0 {
		direction = "over"
	}
	addCheck("budget gap computed", true,
		fmt.Sprintf("requested %.0f vs budget %.0f (%.0f %s-requested)", report.TotalRequested, totalBudget, gap, direction))

	result, err := optimizer.Optimize(requests, totalBudget, constraints)
	if err != nil {
		addCheck("smoke optimization run", false, err.Error())
		return report, nil
	}
	addCheck("smoke optimization run", result.Status == model.StatusOptimal,
		fmt.Sprintf("status %s, allocated %.0f, %d funded", result.Status, result.TotalAllocated, len(result.FundedProjects)))

	logger.Info("Data validation finished", zap.Bool("passed", report.Passed))

	return report, nil
}
