package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/osrs-econ/herbsched/internal/app"
	"github.com/osrs-econ/herbsched/internal/config"
	"github.com/osrs-econ/herbsched/internal/history"
	"github.com/osrs-econ/herbsched/internal/logger"
	"github.com/osrs-econ/herbsched/internal/notify"
	"github.com/osrs-econ/herbsched/internal/pricing"
)

// main runs a single scheduling run and exits. Use cmd/server for the
// long-running scheduled mode with the HTTP API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	store, err := history.Open(cfg.HistoryDBPath)
	if err != nil {
		slog.Error("Failed to open history database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	client := pricing.NewClient(cfg.PriceAPIURL, cfg.HTTPTimeout(), cfg.PriceCacheTTL())

	var sender app.DigestSender
	if cfg.DiscordWebhookURL != "" {
		sender = notify.New(cfg.DiscordWebhookURL)
	}

	runner := app.NewRunner(cfg.CatalogPath, cfg.OutputDir, cfg.EvalWorkers, client, store, sender)

	ctx := logger.WithRunID(context.Background(), logger.GenerateRunID())
	if _, _, err := runner.Run(ctx); err != nil {
		os.Exit(1)
	}
}
