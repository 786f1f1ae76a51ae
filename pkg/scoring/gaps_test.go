package scoring_test

import (
	"strings"
	"testing"

	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/scoring"
)

func TestIdentifyGaps_SparseSingleOperator(t *testing.T) {
	// Two slow stations from one operator in a 10km radius: all three gaps.
	set := &charging.StationSet{
		RadiusKM: 10,
		Stations: []charging.Station{
			{Name: "a", Operator: charging.Operator{Name: "Mono"}, Connectors: []charging.Connector{{Type: "Type 2", PowerKW: 22, Quantity: 2}}},
			{Name: "b", Operator: charging.Operator{Name: "Mono"}, Connectors: []charging.Connector{{Type: "Type 2", PowerKW: 7, Quantity: 1}}},
		},
	}

	gaps := scoring.IdentifyGaps(set)
	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps, got %d: %+v", len(gaps), gaps)
	}

	byType := make(map[string]scoring.Gap)
	for _, g := range gaps {
		byType[g.Type] = g
	}
	if g, ok := byType[scoring.GapFastCharging]; !ok || g.Severity != "high" {
		t.Errorf("expected high-severity fast charging gap, got %+v", g)
	}
	if g, ok := byType[scoring.GapOperatorDiversity]; !ok || g.Severity != "medium" {
		t.Errorf("expected medium-severity operator diversity gap, got %+v", g)
	}
	if g, ok := byType[scoring.GapCoverageDensity]; !ok || g.Severity != "high" {
		t.Errorf("expected high-severity coverage density gap, got %+v", g)
	}

	summary := scoring.GapSummary(gaps)
	if !strings.Contains(summary, "DC fast chargers") || !strings.Contains(summary, ";") {
		t.Errorf("unexpected summary: %q", summary)
	}
}

func TestIdentifyGaps_HealthyNetwork(t *testing.T) {
	// Dense network, three operators, plenty of fast charging: no gaps.
	set := &charging.StationSet{RadiusKM: 1}
	for i, op := range []string{"Alpha", "Beta", "Gamma", "Alpha"} {
		set.Stations = append(set.Stations, charging.Station{
			Name:       op,
			Latitude:   float64(i),
			Operator:   charging.Operator{Name: op},
			Connectors: []charging.Connector{{Type: "CCS", PowerKW: 150, Quantity: 2, IsFastCharge: true}},
		})
	}

	gaps := scoring.IdentifyGaps(set)
	if len(gaps) != 0 {
		t.Errorf("expected no gaps, got %+v", gaps)
	}
	if got := scoring.GapSummary(gaps); got != "No significant gaps identified" {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestIdentifyGaps_FastChargingThreshold(t *testing.T) {
	// 20 stations, exactly 2 fast connectors = 10% -> not a gap.
	set := &charging.StationSet{RadiusKM: 1}
	for i := 0; i < 20; i++ {
		power := 22.0
		if i < 2 {
			power = 150
		}
		op := []string{"A", "B", "C"}[i%3]
		set.Stations = append(set.Stations, charging.Station{
			Name:       "s",
			Operator:   charging.Operator{Name: op},
			Connectors: []charging.Connector{{Type: "CCS", PowerKW: power, Quantity: 1}},
		})
	}

	for _, g := range scoring.IdentifyGaps(set) {
		if g.Type == scoring.GapFastCharging {
			t.Errorf("10%% fast chargers should not be flagged: %+v", g)
		}
	}

	// Drop one fast charger below the threshold and the gap appears.
	set.Stations[1].Connectors[0].PowerKW = 22
	found := false
	for _, g := range scoring.IdentifyGaps(set) {
		if g.Type == scoring.GapFastCharging {
			found = true
		}
	}
	if !found {
		t.Error("expected fast charging gap below 10% threshold")
	}
}
