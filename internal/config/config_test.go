package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fundplan_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath_Valid(t *testing.T) {
	path := writeConfig(t, `
requestsFile: data/resource_requests.csv
constraintsFile: data/constraints.csv
totalBudget: 18000000
constraints:
  minFundedProjects: 5
  maxPerService: 4000000
  prioritizeHighPriority: true
scenarios:
  - name: pessimistic
    budget: 14000000
  - name: optimistic
    budget: 22000000
sensitivity:
  rangeFraction: 0.3
  steps: 7
postgresURL: postgres://localhost:5432/fundplan
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "data/resource_requests.csv", cfg.RequestsFile)
	assert.InDelta(t, 18_000_000, cfg.TotalBudget, 1e-9)
	require.NotNil(t, cfg.Constraints)
	require.NotNil(t, cfg.Constraints.MinFundedProjects)
	assert.Equal(t, 5, *cfg.Constraints.MinFundedProjects)
	require.NotNil(t, cfg.Constraints.MaxPerService)
	assert.InDelta(t, 4_000_000, *cfg.Constraints.MaxPerService, 1e-9)
	assert.True(t, cfg.Constraints.PrioritizeHighPriority)
	require.Len(t, cfg.Scenarios, 2)
	assert.Equal(t, "pessimistic", cfg.Scenarios[0].Name)
	assert.InDelta(t, 0.3, cfg.Sensitivity.RangeFraction, 1e-9)
	assert.Equal(t, 7, cfg.Sensitivity.Steps)
}

func TestLoadFromPath_AppliesSensitivityDefaults(t *testing.T) {
	path := writeConfig(t, `
requestsFile: data/resource_requests.csv
totalBudget: 1000000
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, cfg.Sensitivity.RangeFraction, 1e-9)
	assert.Equal(t, 10, cfg.Sensitivity.Steps)
}

func TestLoadFromPath_MissingRequestsFile(t *testing.T) {
	path := writeConfig(t, `
totalBudget: 1000000
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RequestsFile")
}

func TestLoadFromPath_BadBudget(t *testing.T) {
	path := writeConfig(t, `
requestsFile: data/resource_requests.csv
totalBudget: -5
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestValidate_DuplicateScenarioNames(t *testing.T) {
	cfg := &Config{
		RequestsFile: "data/resource_requests.csv",
		TotalBudget:  100,
		Scenarios: []ScenarioConfig{
			{Name: "base", Budget: 100},
			{Name: "base", Budget: 200},
		},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario name")
}

func TestLoadFromPath_NotYAML(t *testing.T) {
	path := writeConfig(t, "requestsFile: [unclosed")
	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
