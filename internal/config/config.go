package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ScenarioConfig names a budget scenario to solve under
type ScenarioConfig struct {
	Name   string  `yaml:"name" validate:"required"`
	Budget float64 `yaml:"budget" validate:"required,gt=0"`
}

// ConstraintConfig holds the optional policy constraints applied to solves
type ConstraintConfig struct {
	MinFundedProjects      *int     `yaml:"minFundedProjects,omitempty" validate:"omitempty,min=0"`
	MaxPerService          *float64 `yaml:"maxPerService,omitempty" validate:"omitempty,gt=0"`
	PrioritizeHighPriority bool     `yaml:"prioritizeHighPriority,omitempty"`
}

// SensitivityConfig sets the defaults for budget sensitivity sweeps
type SensitivityConfig struct {
	RangeFraction float64 `yaml:"rangeFraction,omitempty" validate:"omitempty,gt=0,lt=1"`
	Steps         int     `yaml:"steps,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	RequestsFile    string            `yaml:"requestsFile" validate:"required"`
	ConstraintsFile string            `yaml:"constraintsFile,omitempty"`
	TotalBudget     float64           `yaml:"totalBudget" validate:"required,gt=0"`
	Constraints     *ConstraintConfig `yaml:"constraints,omitempty"`
	Scenarios       []ScenarioConfig  `yaml:"scenarios,omitempty" validate:"dive"`
	Sensitivity     SensitivityConfig `yaml:"sensitivity,omitempty"`
	PostgresURL     string            `yaml:"postgresURL,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from fundplan_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Validate validates the configuration struct and scenario uniqueness
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Scenarios))
	for i, sc := range cfg.Scenarios {
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q at scenarios[%d]", sc.Name, i)
		}
		seen[sc.Name] = true
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Sensitivity.RangeFraction == 0 {
		cfg.Sensitivity.RangeFraction = 0.2
	}
	if cfg.Sensitivity.Steps == 0 {
		cfg.Sensitivity.Steps = 10
	}
}

// findConfigFile searches for fundplan_config.yaml in the current directory
// and the home directory
func findConfigFile() (string, error) {
	configFileName := "fundplan_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
