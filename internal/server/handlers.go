package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/history"
	"github.com/osrs-econ/herbsched/internal/logger"
	"github.com/osrs-econ/herbsched/internal/report"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an API error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// handleHealthz provides a basic liveness check
func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

func (s *Server) latest(r *http.Request) (string, *domain.RunReport, error) {
	runID, rep, err := s.store.Latest(r.Context())
	if err != nil {
		return "", nil, err
	}
	s.cache.Add(runID, rep)
	return runID, rep, nil
}

func (s *Server) handleLatestJSON(w http.ResponseWriter, r *http.Request) {
	_, rep, err := s.latest(r)
	if err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "no runs recorded")
			return
		}
		logger.FromContext(r.Context()).Error("Failed to load latest run", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleLatestMarkdown(w http.ResponseWriter, r *http.Request) {
	_, rep, err := s.latest(r)
	if err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "no runs recorded")
			return
		}
		logger.FromContext(r.Context()).Error("Failed to load latest run", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}
	w.Header().Set("Content-Type", contentTypeMarkdown)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.RenderMarkdown(rep)))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	if rep, ok := s.cache.Get(runID); ok {
		writeJSON(w, http.StatusOK, rep)
		return
	}

	rep, err := s.store.Get(r.Context(), runID)
	if err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		logger.FromContext(r.Context()).Error("Failed to load run", "run_id", runID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	s.cache.Add(runID, rep)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Recent(r.Context(), recentRunsLimit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
