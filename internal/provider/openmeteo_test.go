package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenMeteo_Temperatures(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"current": {"temperature_2m": -4.5},
			"daily": {"temperature_2m_mean": [-6.0, -2.5, 1.0]}
		}`))
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL, 5*time.Second, testLogger())
	current, daily, err := client.Temperatures(context.Background(), 59.91, 10.75, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["forecast_days"][0] != "3" {
		t.Errorf("expected forecast_days 3, got %v", gotQuery["forecast_days"])
	}
	if gotQuery["daily"][0] != "temperature_2m_mean" {
		t.Errorf("expected daily mean temperature request, got %v", gotQuery["daily"])
	}

	if current != -4.5 {
		t.Errorf("expected current -4.5, got %v", current)
	}
	if len(daily) != 3 || daily[0] != -6.0 || daily[2] != 1.0 {
		t.Errorf("unexpected daily temperatures: %v", daily)
	}
}

func TestOpenMeteo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL, 5*time.Second, testLogger())
	if _, _, err := client.Temperatures(context.Background(), 0, 0, 7); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
