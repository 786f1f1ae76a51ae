package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/chargescope/chargescope/internal/provider"
	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/poi"
)

type fakeStations struct {
	set *charging.StationSet
	err error
}

func (f *fakeStations) FetchStations(ctx context.Context, lat, lon, radiusKM float64, maxResults int) (*charging.StationSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

type fakeRegions struct {
	region demographics.Region
	err    error
}

func (f *fakeRegions) FetchRegion(ctx context.Context, stateFIPS, countyFIPS string) (demographics.Region, error) {
	return f.region, f.err
}

type fakeCountries struct {
	country demographics.Country
	err     error
}

func (f *fakeCountries) FetchCountry(ctx context.Context, code string) (demographics.Country, error) {
	return f.country, f.err
}

type fakePOIs struct {
	mu      sync.Mutex
	calls   int
	failAll bool
	dining  int
}

func (f *fakePOIs) FetchPOIs(ctx context.Context, lat, lon float64, radiusM int) (*poi.Bundle, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("overpass down")
	}
	return &poi.Bundle{
		Counts:  map[poi.Category]int{poi.Dining: f.dining},
		RadiusM: radiusM,
	}, nil
}

type fakeWeather struct {
	current  float64
	daily    []float64
	lastDays int
}

func (f *fakeWeather) Temperatures(ctx context.Context, lat, lon float64, days int) (float64, []float64, error) {
	f.lastDays = days
	return f.current, f.daily, nil
}

type fakeNarrative struct {
	lastPrompt string
}

func (f *fakeNarrative) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	f.lastPrompt = prompt
	return "Narrative summary.", nil
}

// stationGrid builds n stations spread over distinct coordinates with one
// 150 kW connector each, split between two operators.
func stationGrid(n int) *charging.StationSet {
	set := &charging.StationSet{CenterLat: 37.77, CenterLon: -122.42, RadiusKM: 5}
	for i := 0; i < n; i++ {
		op := "ChargeNet"
		if i%2 == 0 {
			op = "VoltHub"
		}
		set.Stations = append(set.Stations, charging.Station{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("Station %d", i+1),
			Operator:  charging.Operator{Name: op},
			Latitude:  37.7 + float64(i)*0.01,
			Longitude: -122.5 + float64(i)*0.01,
			Connectors: []charging.Connector{
				{Type: "CCS", PowerKW: 150, Quantity: 2, IsFastCharge: true},
			},
			NumPoints:   2,
			Operational: true,
			Public:      true,
		})
	}
	return set
}

func TestAnalyzeInfrastructure(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	svc := NewService(provider.Directory{
		Stations: &fakeStations{set: stationGrid(8)},
		Weather:  &fakeWeather{current: 20, daily: []float64{-10, 0, 10}},
	}, Options{Storage: storage})

	report, err := svc.AnalyzeInfrastructure(context.Background(), Request{
		LocationName: "Test Area", Latitude: 37.77, Longitude: -122.42, RadiusKM: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ID == "" {
		t.Error("expected a generated report ID")
	}
	if report.Stats == nil || report.Stats.StationCount != 8 {
		t.Fatalf("unexpected stats: %+v", report.Stats)
	}
	if report.Stats.FastChargers != 16 {
		t.Errorf("expected 16 fast charger connectors, got %d", report.Stats.FastChargers)
	}
	if report.Coverage == nil || report.Coverage.Rating == "" {
		t.Fatalf("expected coverage section, got %+v", report.Coverage)
	}
	if report.Market == nil || report.Market.TotalOperators != 2 {
		t.Fatalf("unexpected market section: %+v", report.Market)
	}
	if report.Levels == nil || !report.Levels.FastAvailable {
		t.Errorf("expected fast charging in level distribution: %+v", report.Levels)
	}
	if report.GapSummary == "" {
		t.Error("expected a gap summary line")
	}
	if report.Climate == nil || report.Climate.RangeFactor != 1.0 {
		t.Errorf("unexpected climate section: %+v", report.Climate)
	}
	if report.Forecast == nil || report.Forecast.AvgRangeFactor != 0.75 {
		t.Errorf("unexpected forecast summary: %+v", report.Forecast)
	}

	// The blob round-trips through storage.
	data, err := storage.GetReport(context.Background(), report.ID)
	if err != nil {
		t.Fatalf("report blob not stored: %v", err)
	}
	var stored Report
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("stored report is not valid JSON: %v", err)
	}
	if stored.Kind != "infrastructure" || stored.Location.Name != "Test Area" {
		t.Errorf("unexpected stored report: kind=%q location=%q", stored.Kind, stored.Location.Name)
	}
}

func TestAnalyzeRegionalEquity(t *testing.T) {
	region := demographics.Region{
		Name:          "San Francisco County, California",
		Population:    851036,
		MedianIncome:  136689,
		PovertyRate:   10.48,
		NoVehicleRate: 4.12,
	}
	svc := NewService(provider.Directory{
		Stations: &fakeStations{set: stationGrid(50)},
		Regions:  &fakeRegions{region: region},
	}, Options{})

	report, err := svc.AnalyzeRegionalEquity(context.Background(), Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5,
		StateFIPS: "06", CountyFIPS: "075",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Partial {
		t.Fatal("expected a complete result")
	}
	if report.Equity == nil {
		t.Fatal("expected equity section")
	}
	if math.Abs(report.Equity.Score-42.69) > 1e-9 || report.Equity.Grade != "D" {
		t.Errorf("expected score 42.69 grade D, got %.2f %s", report.Equity.Score, report.Equity.Grade)
	}
	if report.Access == nil || report.Access.Priority != "High" {
		t.Errorf("unexpected access assessment: %+v", report.Access)
	}
	if len(report.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
	if report.Region == nil || report.Region.Name != region.Name {
		t.Errorf("expected region attached: %+v", report.Region)
	}
}

func TestAnalyzeRegionalEquity_PartialWhenDemographicsUnavailable(t *testing.T) {
	svc := NewService(provider.Directory{
		Stations: &fakeStations{set: stationGrid(6)},
		Regions:  &fakeRegions{err: errors.New("census timeout")},
	}, Options{})

	report, err := svc.AnalyzeRegionalEquity(context.Background(), Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5,
		StateFIPS: "06", CountyFIPS: "075",
	})
	if err != nil {
		t.Fatalf("degraded analysis should not error: %v", err)
	}

	if !report.Partial {
		t.Fatal("expected a partial result")
	}
	if report.PartialReason == "" {
		t.Error("expected a partial reason")
	}
	if report.Equity != nil || report.Region != nil {
		t.Error("partial result should omit equity sections")
	}
	if report.Coverage == nil || report.Market == nil {
		t.Error("partial result should still carry infrastructure sections")
	}
}

func TestAnalyzeRegionalEquity_PartialKeepsForecastWindow(t *testing.T) {
	weather := &fakeWeather{current: 15, daily: []float64{10, 12, 14}}
	svc := NewService(provider.Directory{
		Stations: &fakeStations{set: stationGrid(6)},
		Regions:  &fakeRegions{err: errors.New("census timeout")},
		Weather:  weather,
	}, Options{})

	report, err := svc.AnalyzeRegionalEquity(context.Background(), Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5,
		StateFIPS: "06", CountyFIPS: "075",
		ForecastDays: 3,
	})
	if err != nil {
		t.Fatalf("degraded analysis should not error: %v", err)
	}
	if !report.Partial {
		t.Fatal("expected a partial result")
	}

	// Degrading to infrastructure-only must not reset the requested window.
	if weather.lastDays != 3 {
		t.Errorf("expected a 3-day forecast fetch, got %d", weather.lastDays)
	}
	if report.Climate == nil || report.Forecast == nil {
		t.Errorf("expected climate sections on the partial report: climate=%+v forecast=%+v",
			report.Climate, report.Forecast)
	}
}

func TestAnalyzeGlobalEquity(t *testing.T) {
	country := demographics.Country{
		Name:              "United States",
		Code:              "USA",
		Population:        331000000,
		IncomePerCapita:   76000,
		IncomeLevel:       demographics.LevelHigh,
		UrbanPercent:      83,
		ElectricityAccess: 100,
		EVReadiness:       94.9,
	}
	svc := NewService(provider.Directory{
		Stations:  &fakeStations{set: stationGrid(25)},
		Countries: &fakeCountries{country: country},
	}, Options{})

	report, err := svc.AnalyzeGlobalEquity(context.Background(), Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5, CountryCode: "USA",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Equity == nil {
		t.Fatal("expected equity section")
	}
	// 25 stations over pi*25 sq km against the 0.5 benchmark: access 31.8,
	// economic 100, affordability 100, infrastructure 90 -> 74.13 B.
	if math.Abs(report.Equity.Score-74.13) > 1e-9 || report.Equity.Grade != "B" {
		t.Errorf("expected score 74.13 grade B, got %.2f %s", report.Equity.Score, report.Equity.Grade)
	}
	if report.Country == nil || report.Country.Code != "USA" {
		t.Errorf("expected country attached: %+v", report.Country)
	}
	if len(report.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestAnalyzeAccessibility(t *testing.T) {
	pois := &fakePOIs{dining: 2}
	narrative := &fakeNarrative{}
	svc := NewService(provider.Directory{
		Stations:  &fakeStations{set: stationGrid(12)},
		POIs:      pois,
		Narrative: narrative,
	}, Options{})

	report, err := svc.AnalyzeAccessibility(context.Background(), Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5, WithNarrative: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Default sample size is 10, so only 10 of 12 stations get POI fetches.
	if pois.calls != 10 {
		t.Errorf("expected 10 POI fetches, got %d", pois.calls)
	}
	if len(report.StationScores) != 10 {
		t.Fatalf("expected 10 station scores, got %d", len(report.StationScores))
	}
	// 2 dining x 0.5 = 1.0 per station, so the mean is 1.0 grade F.
	if report.Convenience == nil || report.Convenience.Score != 1.0 || report.Convenience.Grade != "F" {
		t.Errorf("unexpected aggregate: %+v", report.Convenience)
	}
	for _, sc := range report.StationScores {
		if sc.Score != 1.0 {
			t.Errorf("station %d: expected score 1.0, got %v", sc.StationID, sc.Score)
		}
	}
	if report.Narrative != "Narrative summary." {
		t.Errorf("expected narrative attached, got %q", report.Narrative)
	}
	if narrative.lastPrompt == "" {
		t.Error("expected a non-empty narrative prompt")
	}
}

func TestAnalyzeAccessibility_AllFetchesFail(t *testing.T) {
	svc := NewService(provider.Directory{
		Stations: &fakeStations{set: stationGrid(4)},
		POIs:     &fakePOIs{failAll: true},
	}, Options{})

	_, err := svc.AnalyzeAccessibility(context.Background(), Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5,
	})
	if err == nil {
		t.Fatal("expected error when every POI fetch fails")
	}
}

func TestRun_UnknownKind(t *testing.T) {
	svc := NewService(provider.Directory{Stations: &fakeStations{set: stationGrid(1)}}, Options{})
	if _, err := svc.Run(context.Background(), "bogus", Request{RadiusKM: 1}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRun_Dispatch(t *testing.T) {
	svc := NewService(provider.Directory{
		Stations: &fakeStations{set: stationGrid(5)},
	}, Options{})

	report, err := svc.Run(context.Background(), "infrastructure", Request{
		Latitude: 37.77, Longitude: -122.42, RadiusKM: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Kind != "infrastructure" {
		t.Errorf("expected infrastructure kind, got %q", report.Kind)
	}
}
