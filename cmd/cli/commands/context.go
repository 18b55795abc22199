package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/fundplan/internal/config"
	"github.com/jakechorley/fundplan/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.RunStore // nil when no postgresURL is configured
	Logger   *zap.Logger
	Ctx      context.Context
}
