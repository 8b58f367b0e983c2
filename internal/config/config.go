// Package config loads application configuration from the environment, with
// .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultPriceAPIURL is the WeirdGloop GE dump endpoint.
const DefaultPriceAPIURL = "https://chisel.weirdgloop.org/gazproj/gazbot/os_dump.json"

// Config holds the application configuration
type Config struct {
	PriceAPIURL       string `validate:"required,url"`
	CatalogPath       string `validate:"required"`
	OutputDir         string `validate:"required"`
	DiscordWebhookURL string `validate:"omitempty,url"`
	HistoryDBPath     string `validate:"required"`

	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"oneof=dev staging prod test"`
	ServiceName string `validate:"required"`
	Version     string `validate:"required"`

	Port                int `validate:"min=1,max=65535"`
	RunIntervalMinutes  int `validate:"min=1"`
	HTTPTimeoutSeconds  int `validate:"min=1"`
	EvalWorkers         int `validate:"min=1"`
	PriceCacheTTLMinute int `validate:"min=0"`
}

// Load loads the configuration from environment variables. A .env file is
// honored when present but real env vars win.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		PriceAPIURL:       getEnv("PRICE_API_URL", DefaultPriceAPIURL),
		CatalogPath:       getEnv("CATALOG_PATH", "data/RecipeCatalog.json"),
		OutputDir:         getEnv("OUTPUT_DIR", "output"),
		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		HistoryDBPath:     getEnv("HISTORY_DB_PATH", "output/history.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		Environment:       getEnv("ENVIRONMENT", "dev"),
		ServiceName:       getEnv("SERVICE_NAME", "herbsched"),
		Version:           getEnv("VERSION", "dev"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.RunIntervalMinutes, err = getEnvInt("RUN_INTERVAL_MINUTES", 30); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeoutSeconds, err = getEnvInt("HTTP_TIMEOUT_SECONDS", 90); err != nil {
		return nil, err
	}
	if cfg.EvalWorkers, err = getEnvInt("EVAL_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.PriceCacheTTLMinute, err = getEnvInt("PRICE_CACHE_TTL_MINUTES", 5); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// HTTPTimeout returns the price fetch timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// RunInterval returns the serve-mode re-run interval as a duration.
func (c *Config) RunInterval() time.Duration {
	return time.Duration(c.RunIntervalMinutes) * time.Minute
}

// PriceCacheTTL returns the price dump cache TTL; zero disables caching.
func (c *Config) PriceCacheTTL() time.Duration {
	return time.Duration(c.PriceCacheTTLMinute) * time.Minute
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
