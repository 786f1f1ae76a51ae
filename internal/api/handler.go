// Package api implements the hosted ChargeScope REST API: run endpoints
// that execute analyses and read endpoints backed by Postgres and blob
// storage.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/store"
)

// AnalysisStore is the row-store surface the API reads from.
type AnalysisStore interface {
	GetAnalysis(ctx context.Context, id string) (*store.Analysis, error)
	ListAnalyses(ctx context.Context, kind string, limit int) ([]store.Analysis, error)
}

// AnalysisRunner executes analyses on demand.
type AnalysisRunner interface {
	Run(ctx context.Context, kind string, req analysis.Request) (*analysis.Report, error)
}

// Handler is the top-level API handler for the hosted ChargeScope service.
type Handler struct {
	rows     AnalysisStore
	analyses AnalysisRunner
	storage  analysis.StorageClient
	cache    *ReportCache
}

// NewHandler creates a new API handler.
func NewHandler(rows AnalysisStore, analyses AnalysisRunner, storage analysis.StorageClient, cache *ReportCache) *Handler {
	if cache == nil {
		cache = NewReportCacheFromEnv()
	}
	return &Handler{
		rows:     rows,
		analyses: analyses,
		storage:  storage,
		cache:    cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/analyses", h.handleRunAnalysis)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/analyses", h.handleListAnalyses)
	mux.HandleFunc("GET /api/v1/analyses/{analysisID}", h.handleGetAnalysis)
	mux.HandleFunc("GET /api/v1/analyses/{analysisID}/report", h.handleGetReport)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
