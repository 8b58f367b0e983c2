package main

import (
	"github.com/osrs-econ/herbsched/internal/config"
	"github.com/osrs-econ/herbsched/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
