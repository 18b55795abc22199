// Package dataset loads and writes the CSV files the optimizer consumes and
// generates deterministic synthetic fixtures. Nothing here is visible to the
// solver beyond the in-memory request and constraint types.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jakechorley/fundplan/pkg/core/model"
)

// requestColumns are the required columns of a resource request file.
// Extra columns (rationale, derived scores) are tolerated and ignored.
var requestColumns = []string{
	"service_line",
	"budget_requested",
	"min_viable_budget",
	"expected_roi",
	"strategic_priority",
	"success_probability",
}

// LoadRequests reads resource requests from a CSV file, preserving row order.
func LoadRequests(path string) ([]model.ResourceRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open requests file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read requests file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: requests file %s has no data rows", model.ErrInvalidInput, path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requestColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: requests file %s is missing column %q", model.ErrInvalidInput, path, name)
		}
	}

	requests := make([]model.ResourceRequest, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		budgetRequested, err := parseFloat(row[col["budget_requested"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad budget_requested: %v", model.ErrInvalidInput, rowNum+2, err)
		}
		minViable, err := parseFloat(row[col["min_viable_budget"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad min_viable_budget: %v", model.ErrInvalidInput, rowNum+2, err)
		}
		roi, err := parseFloat(row[col["expected_roi"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad expected_roi: %v", model.ErrInvalidInput, rowNum+2, err)
		}
		priority, err := strconv.Atoi(strings.TrimSpace(row[col["strategic_priority"]]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad strategic_priority: %v", model.ErrInvalidInput, rowNum+2, err)
		}
		successProb, err := parseFloat(row[col["success_probability"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad success_probability: %v", model.ErrInvalidInput, rowNum+2, err)
		}

		requests = append(requests, model.ResourceRequest{
			ServiceLine:        strings.TrimSpace(row[col["service_line"]]),
			BudgetRequested:    budgetRequested,
			MinViableBudget:    minViable,
			ExpectedROI:        roi,
			StrategicPriority:  priority,
			SuccessProbability: successProb,
		})
	}

	return requests, nil
}

// SaveRequests writes resource requests to a CSV file in input order.
func SaveRequests(path string, requests []model.ResourceRequest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create requests file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(requestColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, req := range requests {
		row := []string{
			req.ServiceLine,
			formatFloat(req.BudgetRequested),
			formatFloat(req.MinViableBudget),
			formatFloat(req.ExpectedROI),
			strconv.Itoa(req.StrategicPriority),
			formatFloat(req.SuccessProbability),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", req.ServiceLine, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ConstraintFile is the parsed form of a constraints CSV
// (constraint_type,value rows). Rows the optimizer does not recognize are
// ignored, not errors.
type ConstraintFile struct {
	TotalBudget float64
	Constraints model.ConstraintSet
}

// LoadConstraints reads a constraints CSV. Recognized constraint types:
// total_budget, min_funded_projects, max_per_service (alias
// max_single_service_allocation) and prioritize_high_priority.
func LoadConstraints(path string) (*ConstraintFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open constraints file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read constraints file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: constraints file %s has no data rows", model.ErrInvalidInput, path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	typeIdx, ok := col["constraint_type"]
	if !ok {
		return nil, fmt.Errorf("%w: constraints file %s is missing column %q", model.ErrInvalidInput, path, "constraint_type")
	}
	valueIdx, ok := col["value"]
	if !ok {
		return nil, fmt.Errorf("%w: constraints file %s is missing column %q", model.ErrInvalidInput, path, "value")
	}

	cf := &ConstraintFile{}
	for rowNum, row := range records[1:] {
		if len(row) <= typeIdx || len(row) <= valueIdx {
			continue
		}
		value, err := parseFloat(row[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad value: %v", model.ErrInvalidInput, rowNum+2, err)
		}

		switch strings.TrimSpace(row[typeIdx]) {
		case "total_budget":
			cf.TotalBudget = value
		case "min_funded_projects":
			k := int(value)
			cf.Constraints.MinFundedProjects = &k
		case "max_per_service", "max_single_service_allocation":
			m := value
			cf.Constraints.MaxPerService = &m
		case "prioritize_high_priority":
			cf.Constraints.PrioritizeHighPriority = value != 0
		}
	}

	return cf, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("value is NaN")
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
