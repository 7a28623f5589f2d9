package cmd

import (
	"fmt"

	"movies-app/core/config"
	"movies-app/core/database"
	"movies-app/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads configuration from --config, builds the logger and connects to the
// catalog database, the common prelude of every command.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, l, db, nil
}
