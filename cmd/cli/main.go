package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/cmd/cli/commands"
	"github.com/jakechorley/fundplan/internal/config"
	"github.com/jakechorley/fundplan/pkg/postgres"
	"github.com/jakechorley/fundplan/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fundplan",
		Short: "Fundplan CLI - Budget allocation optimization",
		Long:  `A CLI tool for optimizing budget allocation across competing service-line requests, comparing baseline strategies, and running budget scenarios.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name used for log files")

	rootCmd.AddCommand(commands.OptimizeCmd(app))
	rootCmd.AddCommand(commands.CompareCmd(app))
	rootCmd.AddCommand(commands.SensitivityCmd(app))
	rootCmd.AddCommand(commands.ScenariosCmd(app))
	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the optional run store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if app.Cfg.PostgresURL != "" {
		app.Logger.Debug("Connecting to database")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.RunMigrations(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Database = pg
		app.Logger.Debug("Database initialized")
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	return nil
}
