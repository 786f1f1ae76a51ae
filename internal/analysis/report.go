package analysis

import (
	"time"

	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/climate"
	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/scoring"
)

// Location identifies the analyzed search area.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKM  float64 `json:"radius_km"`
}

// StationScore is one station's convenience result within an accessibility
// analysis.
type StationScore struct {
	StationID   int64              `json:"station_id"`
	StationName string             `json:"station_name"`
	Score       float64            `json:"score"`
	Grade       string             `json:"grade"`
	Components  map[string]float64 `json:"components,omitempty"`
}

// Report is the full document produced by one analysis run. Sections not
// applicable to the analysis kind (or lost to an unavailable provider) are
// nil and omitted from the JSON.
type Report struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generated_at"`
	Location    Location  `json:"location"`

	// Partial marks a degraded result: stations were analyzed but a
	// required demographic source was unavailable.
	Partial       bool   `json:"partial,omitempty"`
	PartialReason string `json:"partial_reason,omitempty"`

	Stats      *charging.SetStats          `json:"station_stats,omitempty"`
	Levels     *charging.LevelDistribution `json:"charging_levels,omitempty"`
	Coverage   *scoring.Coverage           `json:"coverage,omitempty"`
	Market     *scoring.MarketAnalysis     `json:"operators,omitempty"`
	Gaps       []scoring.Gap               `json:"gaps,omitempty"`
	GapSummary string                      `json:"gap_summary,omitempty"`

	Region          *demographics.Region      `json:"region,omitempty"`
	Country         *demographics.Country     `json:"country,omitempty"`
	Equity          *scoring.ScoreResult      `json:"equity,omitempty"`
	Access          *scoring.AccessAssessment `json:"access,omitempty"`
	Recommendations []scoring.Recommendation  `json:"recommendations,omitempty"`

	Convenience   *scoring.ScoreResult `json:"convenience,omitempty"`
	StationScores []StationScore       `json:"station_scores,omitempty"`

	Climate  *climate.Conditions      `json:"climate,omitempty"`
	Forecast *climate.ForecastSummary `json:"climate_forecast,omitempty"`

	Narrative string `json:"narrative,omitempty"`
}
