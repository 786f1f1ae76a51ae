package surface_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/climate"
	"github.com/chargescope/chargescope/pkg/scoring"
	"github.com/chargescope/chargescope/pkg/surface"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		ID:   "test-report",
		Kind: "regional_equity",
		Location: analysis.Location{
			Name:     "Oakland, CA",
			Latitude: 37.8044, Longitude: -122.2712,
			RadiusKM: 10,
		},
		Stats: &charging.SetStats{
			StationCount:    42,
			TotalConnectors: 96,
			FastChargers:    30,
			Operational:     40,
			PublicAccess:    42,
			UniqueOperators: 5,
			Power:           charging.PowerStats{MinKW: 7.2, MaxKW: 350, AvgKW: 88},
		},
		Coverage: &scoring.Coverage{
			AreaKM2:        314.2,
			StationDensity: 0.13,
			Rating:         "Fair",
			Score:          3,
			Evenness:       scoring.Evenness{Score: 0.75, Rating: "Good"},
		},
		Market: &scoring.MarketAnalysis{
			TotalOperators: 5,
			TopOperator:    "VoltHub",
			HHI:            3200,
			Concentration:  "concentrated",
			Shares: []scoring.OperatorShare{
				{Name: "VoltHub", Stations: 20, MarketShare: 47.6},
				{Name: "ChargeNet", Stations: 12, MarketShare: 28.6},
			},
		},
		Gaps: []scoring.Gap{
			{Type: scoring.GapFastCharging, Severity: "high", Description: "Limited fast charging in the area"},
			{Type: scoring.GapCoverageDensity, Severity: "medium", Description: "Low station density for the search radius"},
		},
		GapSummary: "2 infrastructure gaps identified",
		Equity: &scoring.ScoreResult{
			Score: 42.69, Scale: 100, Grade: "D", Rating: "Poor",
			Components: map[string]float64{"infrastructure": 12.0, "economic_need": 14.5},
		},
		Access: &scoring.AccessAssessment{
			StationsPer1000: 0.059,
			Priority:        "High",
			Description:     "Inadequate charging access in a high-need community",
		},
		Climate: &climate.Conditions{
			TemperatureC: -4.5,
			RangeFactor:  0.82,
			Impact:       climate.Impact{Level: "Moderate", Recommendation: "Plan for roughly 18% reduced range."},
		},
		Forecast: &climate.ForecastSummary{AvgRangeFactor: 0.85, MinRangeFactor: 0.78, MaxRangeFactor: 0.95, Days: 7},
		Recommendations: []scoring.Recommendation{
			{
				Priority:       "High",
				Category:       "equity",
				Recommendation: "Prioritize public investment in charging infrastructure",
				Rationale:      "High poverty rate combined with low station density indicates the market alone will not close the access gap in this region.",
			},
		},
		Narrative: "Charging access in this region lags well behind demand.",
	}
}

func TestTerminalRenderer_Sections(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()

	want := []string{
		"ChargeScope: Regional Equity Analysis — Oakland, CA (10.0 km radius)",
		"Stations: 42 (96 connectors, 30 fast, 40 operational, 42 public, 5 operators)",
		"Power:    7-350 kW per site (avg 88 kW)",
		"Coverage: Fair — 0.13 stations/sq km over 314.2 sq km",
		"Operators: 5 total, concentrated market (HHI 3200)",
		"VoltHub",
		"Limited fast charging in the area",
		"Equity: Grade D — Score 42.7/100 (Poor)",
		"Access: Inadequate charging access in a high-need community — priority High",
		"Climate: -4.5C — range factor 0.82 (Moderate impact)",
		"7-day forecast: range factor 0.85 avg (0.78-0.95)",
		"[High] Prioritize public investment in charging infrastructure",
		"Summary:",
		"Charging access in this region lags well behind demand.",
	}
	for _, s := range want {
		if !strings.Contains(output, s) {
			t.Errorf("expected output to contain %q\ngot:\n%s", s, output)
		}
	}
}

func TestTerminalRenderer_Partial(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := sampleReport()
	report.Partial = true
	report.PartialReason = "demographic data unavailable"
	report.Equity = nil
	report.Access = nil
	report.Recommendations = nil

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, report); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Partial result: demographic data unavailable") {
		t.Error("expected partial warning in output")
	}
	if strings.Contains(output, "Equity:") {
		t.Error("did not expect an equity section without a score")
	}
	if !strings.Contains(output, "Stations: 42") {
		t.Error("expected infrastructure sections to survive a partial result")
	}
}

func TestTerminalRenderer_CoordinateFallback(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := &analysis.Report{
		Kind:     "infrastructure",
		Location: analysis.Location{Latitude: 13.7563, Longitude: 100.5018, RadiusKM: 5},
	}

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, report); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "13.7563, 100.5018") {
		t.Error("expected coordinates in the header when the location has no name")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR the output carries ANSI codes.
	if _, ok := surface.ForFormat("text").(*surface.TerminalRenderer); !ok {
		t.Fatal("expected terminal renderer for text format")
	}

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestJSONRenderer_RoundTrip(t *testing.T) {
	r, ok := surface.ForFormat("json").(*surface.JSONRenderer)
	if !ok {
		t.Fatal("expected JSON renderer for json format")
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded analysis.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Kind != "regional_equity" || decoded.Equity == nil || decoded.Equity.Grade != "D" {
		t.Errorf("unexpected decoded report: kind=%q", decoded.Kind)
	}
}
