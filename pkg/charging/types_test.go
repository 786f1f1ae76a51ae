package charging

import (
	"math"
	"path/filepath"
	"testing"
	"time"
)

func testSet() *StationSet {
	return &StationSet{
		CenterLat: 37.7749,
		CenterLon: -122.4194,
		RadiusKM:  10,
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Stations: []Station{
			{
				ID: 1, Name: "Mission Plaza",
				Operator:    Operator{Name: "VoltHub"},
				Operational: true, Public: true,
				Connectors: []Connector{
					{Type: "CCS", PowerKW: 150, Quantity: 2, IsFastCharge: true},
					{Type: "Type 2", PowerKW: 7.4, Quantity: 4},
				},
			},
			{
				ID: 2, Name: "Harbor Garage",
				Operator:    Operator{Name: "ChargeNet"},
				Operational: true, Public: false,
				Connectors: []Connector{
					{Type: "CHAdeMO", PowerKW: 50, Quantity: 1, IsFastCharge: true},
				},
			},
			{
				ID: 3, Name: "Depot North",
				Operator: Operator{Name: "VoltHub"},
				// Quantity 0 counts as one connector.
				Connectors: []Connector{
					{Type: "Type 1", PowerKW: 3.7},
				},
			},
		},
	}
}

func TestSetStats(t *testing.T) {
	stats := testSet().Stats()

	if stats.StationCount != 3 {
		t.Errorf("StationCount = %d, want 3", stats.StationCount)
	}
	if stats.TotalConnectors != 8 {
		t.Errorf("TotalConnectors = %d, want 8", stats.TotalConnectors)
	}
	if stats.FastChargers != 3 {
		t.Errorf("FastChargers = %d, want 3", stats.FastChargers)
	}
	if stats.Operational != 2 {
		t.Errorf("Operational = %d, want 2", stats.Operational)
	}
	if stats.PublicAccess != 1 {
		t.Errorf("PublicAccess = %d, want 1", stats.PublicAccess)
	}
	if stats.UniqueOperators != 2 {
		t.Errorf("UniqueOperators = %d, want 2", stats.UniqueOperators)
	}

	// Per-station totals: 157.4, 50, 3.7.
	if stats.Power.MinKW != 3.7 || stats.Power.MaxKW != 157.4 {
		t.Errorf("power range = %v-%v, want 3.7-157.4", stats.Power.MinKW, stats.Power.MaxKW)
	}
	wantAvg := (157.4 + 50 + 3.7) / 3
	if math.Abs(stats.Power.AvgKW-wantAvg) > 1e-9 {
		t.Errorf("AvgKW = %v, want %v", stats.Power.AvgKW, wantAvg)
	}
}

func TestStats_EmptySet(t *testing.T) {
	stats := (&StationSet{RadiusKM: 5}).Stats()
	if stats.StationCount != 0 || stats.TotalConnectors != 0 {
		t.Errorf("empty set stats = %+v, want zeros", stats)
	}
	if stats.Power.AvgKW != 0 {
		t.Errorf("AvgKW = %v, want 0 for empty set", stats.Power.AvgKW)
	}
}

func TestOperatorCounts(t *testing.T) {
	set := testSet()
	set.Stations = append(set.Stations, Station{
		ID: 4, Name: "Airport East",
		// Empty operator names group under Unknown.
		Connectors: []Connector{{Type: "CCS", PowerKW: 150, Quantity: 2, IsFastCharge: true}},
	})

	counts := set.OperatorCounts()
	if len(counts) != 3 {
		t.Fatalf("expected 3 operators, got %d", len(counts))
	}
	if counts[0].Name != "VoltHub" || counts[0].Stations != 2 {
		t.Errorf("top operator = %+v, want VoltHub with 2 stations", counts[0])
	}
	if counts[0].Connectors != 7 {
		t.Errorf("VoltHub connectors = %d, want 7", counts[0].Connectors)
	}

	// One station each: ties break alphabetically.
	if counts[1].Name != "ChargeNet" || counts[2].Name != "Unknown" {
		t.Errorf("tie order = %s, %s, want ChargeNet, Unknown", counts[1].Name, counts[2].Name)
	}
}

func TestLevelForPower(t *testing.T) {
	tests := []struct {
		powerKW float64
		want    ChargingLevel
	}{
		{3.7, Level1},
		{4.99, Level1},
		{5, Level2},
		{7.4, Level2},
		{21.9, Level2},
		{22, Level3},
		{50, Level3},
		{50.1, DCFast},
		{350, DCFast},
	}

	for _, tt := range tests {
		if got := LevelForPower(tt.powerKW); got != tt.want {
			t.Errorf("LevelForPower(%v) = %v, want %v", tt.powerKW, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	dist := testSet().Levels()

	if dist.TotalConnectors != 8 {
		t.Fatalf("TotalConnectors = %d, want 8", dist.TotalConnectors)
	}
	if !dist.FastAvailable {
		t.Error("expected fast charging available")
	}

	want := map[ChargingLevel]int{Level1: 1, Level2: 4, Level3: 1, DCFast: 2}
	for _, lc := range dist.Levels {
		if lc.Count != want[lc.Level] {
			t.Errorf("%s count = %d, want %d", lc.Level, lc.Count, want[lc.Level])
		}
		wantPct := float64(want[lc.Level]) / 8 * 100
		if math.Abs(lc.Percentage-wantPct) > 1e-9 {
			t.Errorf("%s percentage = %v, want %v", lc.Level, lc.Percentage, wantPct)
		}
	}
}

func TestLevels_EmptySet(t *testing.T) {
	dist := (&StationSet{}).Levels()
	if dist.FastAvailable {
		t.Error("empty set must not report fast charging")
	}
	for _, lc := range dist.Levels {
		if lc.Percentage != 0 {
			t.Errorf("%s percentage = %v, want 0", lc.Level, lc.Percentage)
		}
	}
}

func TestSaveLoadStationSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "set.json")
	set := testSet()

	if err := SaveStationSet(path, set); err != nil {
		t.Fatalf("SaveStationSet() error: %v", err)
	}

	loaded, err := LoadStationSet(path)
	if err != nil {
		t.Fatalf("LoadStationSet() error: %v", err)
	}

	if len(loaded.Stations) != 3 || loaded.RadiusKM != 10 {
		t.Errorf("loaded set = %d stations radius %v, want 3 stations radius 10", len(loaded.Stations), loaded.RadiusKM)
	}
	if loaded.Stations[0].Connectors[0].PowerKW != 150 {
		t.Errorf("connector power lost in round trip: %+v", loaded.Stations[0].Connectors[0])
	}
	if !loaded.FetchedAt.Equal(set.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", loaded.FetchedAt, set.FetchedAt)
	}
}

func TestLoadStationSet_Missing(t *testing.T) {
	if _, err := LoadStationSet(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
