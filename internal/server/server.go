package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/history"
	"github.com/osrs-econ/herbsched/internal/logger"
	"github.com/osrs-econ/herbsched/internal/metrics"
)

// RunStore provides access to persisted run reports.
type RunStore interface {
	Get(ctx context.Context, runID string) (*domain.RunReport, error)
	Latest(ctx context.Context) (string, *domain.RunReport, error)
	Recent(ctx context.Context, n int) ([]history.Entry, error)
}

type Server struct {
	httpServer *http.Server
	store      RunStore
	cache      *lru.Cache[string, *domain.RunReport]
}

// NewServer creates a new Server instance
func NewServer(port int, store RunStore) (*Server, error) {
	cache, err := lru.New[string, *domain.RunReport](reportCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	s := &Server{
		store: store,
		cache: cache,
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handleHealthz())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/v1/runs", s.handleRecentRuns) // Handle /v1/runs exactly
	r.Route("/v1/runs", func(r chi.Router) {
		r.Get("/", s.handleRecentRuns)
		r.Get("/latest", s.handleLatestJSON)
		r.Get("/latest.md", s.handleLatestMarkdown)
		r.Get("/{runID}", s.handleGetRun)
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// CacheReport primes the report cache after a completed run so that
// requests for fresh runs skip the history database.
func (s *Server) CacheReport(runID string, r *domain.RunReport) {
	s.cache.Add(runID, r)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRunID()
		ctx := logger.WithRunID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Start starts the server
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
