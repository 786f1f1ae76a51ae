package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

const ocmSample = `[
  {
    "ID": 12345,
    "UUID": "abc-123",
    "NumberOfPoints": 4,
    "DateLastVerified": "2024-11-02T08:30:00Z",
    "AddressInfo": {
      "Title": "City Hall Garage",
      "AddressLine1": "1 Dr Carlton B Goodlett Pl",
      "Town": "San Francisco",
      "StateOrProvince": "CA",
      "Postcode": "94102",
      "Country": {"Title": "United States"},
      "Latitude": 37.779,
      "Longitude": -122.418
    },
    "OperatorInfo": {"ID": 23, "Title": "ChargePoint", "IsPrivateIndividual": false},
    "StatusType": {"IsOperational": true},
    "UsageType": {"IsPublicAccess": true},
    "Connections": [
      {"PowerKW": 6.6, "Quantity": 2, "ConnectionType": {"Title": "Type 1 (J1772)"}, "Level": {"Title": "Level 2", "IsFastChargeCapable": false}},
      {"PowerKW": 62.5, "Quantity": 1, "ConnectionType": {"Title": "CCS"}, "Level": {"Title": "Level 3", "IsFastChargeCapable": true}}
    ]
  },
  {
    "ID": 67890,
    "AddressInfo": {"Latitude": 37.78, "Longitude": -122.41},
    "Connections": [{"PowerKW": 7.2, "Quantity": 0}]
  }
]`

func TestOpenChargeMap_FetchStations(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ocmSample))
	}))
	defer srv.Close()

	client := NewOpenChargeMapClient(srv.URL, "test-key", 5*time.Second, testLogger())
	set, err := client.FetchStations(context.Background(), 37.7749, -122.4194, 10, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["key"][0] != "test-key" {
		t.Errorf("expected api key in query, got %v", gotQuery["key"])
	}
	if gotQuery["distanceunit"][0] != "KM" {
		t.Errorf("expected KM distance unit, got %v", gotQuery["distanceunit"])
	}

	if len(set.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(set.Stations))
	}
	if set.RadiusKM != 10 || set.CenterLat != 37.7749 {
		t.Errorf("unexpected set metadata: %+v", set)
	}

	first := set.Stations[0]
	if first.Name != "City Hall Garage" || first.Operator.Name != "ChargePoint" {
		t.Errorf("unexpected first station: %+v", first)
	}
	if len(first.Connectors) != 2 {
		t.Fatalf("expected 2 connectors, got %d", len(first.Connectors))
	}
	if !first.Connectors[1].IsFastCharge || first.Connectors[1].PowerKW != 62.5 {
		t.Errorf("unexpected fast connector: %+v", first.Connectors[1])
	}
	if first.VerifiedAt.IsZero() {
		t.Error("expected verified timestamp to be parsed")
	}

	// Sparse record falls back to defaults.
	second := set.Stations[1]
	if second.Name != "Unknown Station" || second.Operator.Name != "Unknown" {
		t.Errorf("expected fallback names, got %+v", second)
	}
	if !second.Operational || !second.Public {
		t.Error("missing status blocks should default to operational and public")
	}
	if second.Connectors[0].Quantity != 1 {
		t.Errorf("zero quantity should default to 1, got %d", second.Connectors[0].Quantity)
	}
	if second.NumPoints != 1 {
		t.Errorf("missing NumberOfPoints should fall back to connector count, got %d", second.NumPoints)
	}
}

func TestOpenChargeMap_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenChargeMapClient(srv.URL, "", 5*time.Second, testLogger())
	if _, err := client.FetchStations(context.Background(), 0, 0, 5, 10); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
