package dataset

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/jakechorley/fundplan/pkg/core/model"
)

// DefaultSeed pins the synthetic dataset so repeated generations are
// identical. Generator randomness never reaches the optimizer.
const DefaultSeed = 42

// baseline service lines for a B2B e-commerce agency: marketing, branding
// and automation offerings competing for the annual budget.
var sampleLines = []model.ResourceRequest{
	{ServiceLine: "Digital Marketing Campaigns", BudgetRequested: 3_500_000, MinViableBudget: 2_000_000, ExpectedROI: 2.8, StrategicPriority: 5, SuccessProbability: 0.85},
	{ServiceLine: "Marketing Automation", BudgetRequested: 2_800_000, MinViableBudget: 1_500_000, ExpectedROI: 3.2, StrategicPriority: 5, SuccessProbability: 0.90},
	{ServiceLine: "Brand Strategy", BudgetRequested: 2_200_000, MinViableBudget: 1_200_000, ExpectedROI: 2.4, StrategicPriority: 4, SuccessProbability: 0.80},
	{ServiceLine: "E-Commerce Optimization", BudgetRequested: 3_000_000, MinViableBudget: 1_800_000, ExpectedROI: 2.9, StrategicPriority: 5, SuccessProbability: 0.88},
	{ServiceLine: "Content Marketing", BudgetRequested: 1_800_000, MinViableBudget: 1_000_000, ExpectedROI: 2.2, StrategicPriority: 3, SuccessProbability: 0.75},
	{ServiceLine: "Social Media Management", BudgetRequested: 1_500_000, MinViableBudget: 800_000, ExpectedROI: 1.9, StrategicPriority: 3, SuccessProbability: 0.70},
	{ServiceLine: "Email Marketing", BudgetRequested: 1_200_000, MinViableBudget: 600_000, ExpectedROI: 3.5, StrategicPriority: 4, SuccessProbability: 0.92},
	{ServiceLine: "SEO/SEM Services", BudgetRequested: 2_500_000, MinViableBudget: 1_500_000, ExpectedROI: 2.6, StrategicPriority: 4, SuccessProbability: 0.82},
	{ServiceLine: "Analytics & Reporting", BudgetRequested: 1_500_000, MinViableBudget: 900_000, ExpectedROI: 2.0, StrategicPriority: 3, SuccessProbability: 0.85},
	{ServiceLine: "Client Success", BudgetRequested: 1_800_000, MinViableBudget: 1_200_000, ExpectedROI: 1.8, StrategicPriority: 4, SuccessProbability: 0.90},
}

// SampleTotalBudget is the default total budget shipped with the sample
// constraints, deliberately below the sum of requested budgets so the
// optimizer has real choices to make.
const SampleTotalBudget = 18_000_000

// GenerateRequests produces the synthetic request set. Budgets and ROIs are
// jittered around the baselines with the seeded source so the same seed
// always yields the same dataset.
func GenerateRequests(seed int64) []model.ResourceRequest {
	rng := rand.New(rand.NewSource(seed))

	requests := make([]model.ResourceRequest, len(sampleLines))
	for i, base := range sampleLines {
		req := base
		req.BudgetRequested = jitter(rng, base.BudgetRequested, 0.10)
		req.MinViableBudget = jitter(rng, base.MinViableBudget, 0.10)
		if req.MinViableBudget > req.BudgetRequested {
			req.MinViableBudget = req.BudgetRequested
		}
		req.ExpectedROI = jitter(rng, base.ExpectedROI, 0.05)
		requests[i] = req
	}

	return requests
}

// jitter scales v by a uniform factor in [1-spread, 1+spread].
func jitter(rng *rand.Rand, v, spread float64) float64 {
	return v * (1 - spread + 2*spread*rng.Float64())
}

// WriteSampleData generates the synthetic dataset and writes the requests
// and constraints CSVs into dir, creating it if needed.
func WriteSampleData(dir string, seed int64) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	requests := GenerateRequests(seed)
	if err := SaveRequests(filepath.Join(dir, "resource_requests.csv"), requests); err != nil {
		return err
	}

	constraintsPath := filepath.Join(dir, "constraints.csv")
	f, err := os.Create(constraintsPath)
	if err != nil {
		return fmt.Errorf("failed to create constraints file: %w", err)
	}
	defer f.Close()

	rows := fmt.Sprintf(
		"constraint_type,value,unit,description\n"+
			"total_budget,%d,USD,Total available budget for all service lines\n"+
			"max_per_service,4000000,USD,Maximum budget for any single service line\n"+
			"min_funded_projects,5,Count,Minimum number of service lines to fund\n",
		SampleTotalBudget)
	if _, err := f.WriteString(rows); err != nil {
		return fmt.Errorf("failed to write constraints file: %w", err)
	}

	return nil
}
