package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/store"
)

// runAnalysisRequest is the POST /api/v1/analyses payload.
type runAnalysisRequest struct {
	Kind          string  `json:"kind"`
	LocationName  string  `json:"location_name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusKM      float64 `json:"radius_km"`
	MaxResults    int     `json:"max_results"`
	StateFIPS     string  `json:"state_fips"`
	CountyFIPS    string  `json:"county_fips"`
	CountryCode   string  `json:"country_code"`
	ForecastDays  int     `json:"forecast_days"`
	WithNarrative bool    `json:"with_narrative"`
}

func (h *Handler) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req runAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if !store.ValidKind(req.Kind) {
		writeError(w, http.StatusBadRequest, "unknown analysis kind: "+req.Kind)
		return
	}
	if req.RadiusKM <= 0 {
		writeError(w, http.StatusBadRequest, "radius_km must be positive")
		return
	}

	report, err := h.analyses.Run(r.Context(), req.Kind, analysis.Request{
		LocationName:  req.LocationName,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		RadiusKM:      req.RadiusKM,
		MaxResults:    req.MaxResults,
		StateFIPS:     req.StateFIPS,
		CountyFIPS:    req.CountyFIPS,
		CountryCode:   req.CountryCode,
		ForecastDays:  req.ForecastDays,
		WithNarrative: req.WithNarrative,
	})
	if err != nil {
		log.Printf("analysis failed: %v", err)
		writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && !store.ValidKind(kind) {
		writeError(w, http.StatusBadRequest, "unknown analysis kind: "+kind)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	analyses, err := h.rows.ListAnalyses(r.Context(), kind, limit)
	if err != nil {
		log.Printf("list analyses failed: %v", err)
		writeError(w, http.StatusInternalServerError, "list analyses failed")
		return
	}
	if analyses == nil {
		analyses = []store.Analysis{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("analysisID")
	a, err := h.rows.GetAnalysis(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if err != nil {
		log.Printf("get analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, "get analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("analysisID")

	a, err := h.rows.GetAnalysis(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if err != nil {
		log.Printf("get analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, "get analysis failed")
		return
	}
	if a.ReportRef == "" {
		writeError(w, http.StatusNotFound, "analysis has no stored report")
		return
	}
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return
	}

	data := h.cache.Get(a.ID)
	if data == nil {
		data, err = h.storage.GetReport(r.Context(), a.ID)
		if err != nil {
			log.Printf("get report blob failed: %v", err)
			writeError(w, http.StatusInternalServerError, "get report failed")
			return
		}
		h.cache.Put(a.ID, data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
