package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osrs-econ/herbsched/internal/app"
	"github.com/osrs-econ/herbsched/internal/catalog"
	"github.com/osrs-econ/herbsched/internal/config"
	"github.com/osrs-econ/herbsched/internal/history"
	"github.com/osrs-econ/herbsched/internal/notify"
	"github.com/osrs-econ/herbsched/internal/pricing"
	"github.com/osrs-econ/herbsched/internal/scheduler"
	"github.com/osrs-econ/herbsched/internal/server"
	"github.com/osrs-econ/herbsched/internal/worker"
)

const (
	workerCount     = 1
	workerQueueSize = 4
	shutdownTimeout = 10 * time.Second
)

// main runs the scheduler loop alongside the report HTTP API. Runs fire on
// the configured interval and whenever the catalog file changes on disk.
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

	srv, err := server.NewServer(cfg.Port, store)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}
	runner.OnComplete(srv.CacheReport)

	// A single worker keeps runs strictly serialized; the small queue
	// absorbs a catalog-change trigger landing mid-run.
	pool := worker.NewPool(workerCount, workerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.RunInterval(), runner)

	watcher, err := catalog.NewWatcher(cfg.CatalogPath, func() {
		slog.Info("Catalog changed, triggering run")
		if !pool.TryEnqueue(runner) {
			slog.Warn("Run queue full, catalog-change run dropped")
		}
	})
	if err != nil {
		slog.Error("Failed to create catalog watcher", "error", err)
		os.Exit(1)
	}

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	watcher.Start(watchCtx)

	// First run at startup so the API has a report to serve.
	if !pool.TryEnqueue(runner) {
		slog.Warn("Run queue full, startup run dropped")
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	cancelWatch()
	if err := watcher.Stop(); err != nil {
		slog.Error("Watcher shutdown failed", "error", err)
	}
	sched.Stop()
	pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	slog.Info("Shutdown complete")
}
