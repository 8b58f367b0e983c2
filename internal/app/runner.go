package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/osrs-econ/herbsched/internal/catalog"
	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/logger"
	"github.com/osrs-econ/herbsched/internal/metrics"
	"github.com/osrs-econ/herbsched/internal/pricing"
	"github.com/osrs-econ/herbsched/internal/report"
	"github.com/osrs-econ/herbsched/internal/valuation"
)

// PriceFetcher retrieves the raw GE price dump.
type PriceFetcher interface {
	FetchDump(ctx context.Context) (any, error)
	URL() string
}

// ReportSaver persists a finished run report.
type ReportSaver interface {
	Save(ctx context.Context, runID string, r *domain.RunReport) error
}

// DigestSender delivers the compact digest of a run.
type DigestSender interface {
	Send(ctx context.Context, content string) error
}

// Runner executes one full scheduling run: load the catalog, fetch prices,
// evaluate every recipe, rank, render, persist, and notify. Catalog load and
// price fetch failures abort the run; history and webhook failures are logged
// and do not.
type Runner struct {
	catalogPath string
	outputDir   string
	workers     int

	fetcher PriceFetcher
	saver   ReportSaver
	sender  DigestSender

	// onComplete, when set, receives every successful run. Serve mode uses
	// it to prime the HTTP report cache.
	onComplete func(runID string, r *domain.RunReport)
}

// NewRunner creates a Runner. saver and sender may be nil to disable history
// persistence and webhook delivery respectively.
func NewRunner(catalogPath, outputDir string, workers int, fetcher PriceFetcher, saver ReportSaver, sender DigestSender) *Runner {
	return &Runner{
		catalogPath: catalogPath,
		outputDir:   outputDir,
		workers:     workers,
		fetcher:     fetcher,
		saver:       saver,
		sender:      sender,
	}
}

// OnComplete registers a hook invoked after each successful run.
func (r *Runner) OnComplete(fn func(runID string, rep *domain.RunReport)) {
	r.onComplete = fn
}

// Run executes a single scheduling run and returns its ID and report.
func (r *Runner) Run(ctx context.Context) (string, *domain.RunReport, error) {
	runID, ok := logger.RunIDFromContext(ctx)
	if !ok {
		runID = logger.GenerateRunID()
		ctx = logger.WithRunID(ctx, runID)
	}
	log := logger.FromContext(ctx)
	log.Info(LogMsgRunStarted, "catalog", r.catalogPath, "price_source", r.fetcher.URL())

	rep, err := r.execute(ctx)
	if err != nil {
		metrics.RunsTotal.WithLabelValues(metrics.StatusError).Inc()
		log.Error(LogMsgRunFailed, "error", err)
		return runID, nil, err
	}

	metrics.RunsTotal.WithLabelValues(metrics.StatusOK).Inc()
	log.Info(LogMsgRunCompleted,
		"recipes", len(rep.TableA),
		"invalid", len(rep.InvalidRecipes()),
		"alerts", len(rep.TableB))

	if r.onComplete != nil {
		r.onComplete(runID, rep)
	}
	return runID, rep, nil
}

func (r *Runner) execute(ctx context.Context) (*domain.RunReport, error) {
	log := logger.FromContext(ctx)

	recipes, err := catalog.Load(r.catalogPath)
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgCatalogLoaded, "recipes", len(recipes))

	fetchStart := time.Now()
	dump, err := r.fetcher.FetchDump(ctx)
	if err != nil {
		return nil, err
	}
	metrics.PriceFetchDuration.Observe(time.Since(fetchStart).Seconds())

	index := pricing.BuildIndex(dump)
	log.Info(LogMsgPricesFetched, "items", index.Len())

	evalStart := time.Now()
	evaluator := valuation.NewEvaluator(index)
	tableA := evaluator.EvaluateAll(ctx, recipes, r.workers)
	metrics.EvaluationDuration.Observe(time.Since(evalStart).Seconds())

	valuation.SortTableA(tableA)
	tableB := valuation.FilterAlerts(tableA)

	rep := &domain.RunReport{
		TimestampUTC: time.Now().UTC().Format(timestampLayout),
		PriceSource:  r.fetcher.URL(),
		TableA:       tableA,
		TableB:       tableB,
	}

	metrics.RecipesEvaluated.Add(float64(len(tableA)))
	metrics.InvalidRecipes.Add(float64(len(rep.InvalidRecipes())))
	metrics.Alerts.Add(float64(len(tableB)))

	if err := r.writeOutputs(rep); err != nil {
		return nil, err
	}
	log.Info(LogMsgReportWritten, "dir", r.outputDir)

	r.persistAndNotify(ctx, rep)
	return rep, nil
}

// writeOutputs renders the markdown and JSON reports into the output
// directory, overwriting the previous run's files.
func (r *Runner) writeOutputs(rep *domain.RunReport) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	md := report.RenderMarkdown(rep)
	if err := os.WriteFile(filepath.Join(r.outputDir, LatestMarkdownFile), []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.outputDir, LatestJSONFile), payload, 0644); err != nil {
		return fmt.Errorf("failed to write json report: %w", err)
	}
	return nil
}

// persistAndNotify saves the run to history and posts the digest. Both are
// best effort.
func (r *Runner) persistAndNotify(ctx context.Context, rep *domain.RunReport) {
	log := logger.FromContext(ctx)
	runID, _ := logger.RunIDFromContext(ctx)

	if r.saver != nil {
		if err := r.saver.Save(ctx, runID, rep); err != nil {
			log.Error(LogMsgHistoryFailed, "error", err)
		} else {
			log.Info(LogMsgHistorySaved, "run_id", runID)
		}
	}

	if r.sender == nil {
		log.Debug(LogMsgNoWebhookConfig)
		return
	}
	digest := report.RenderCompact(rep)
	if err := r.sender.Send(ctx, digest); err != nil {
		metrics.WebhookDeliveryErrors.Inc()
		log.Error(LogMsgDigestFailed, "error", err)
		return
	}
	log.Info(LogMsgDigestSent, "alerts", len(rep.TableB))
}

// Process implements worker.Job so scheduled runs go through the worker pool.
func (r *Runner) Process(ctx context.Context) error {
	_, _, err := r.Run(ctx)
	return err
}
