// Package provider contains the clients for the external data sources
// ChargeScope aggregates: charging stations, demographics, points of
// interest, weather, and LLM narratives. Every source is an interface so
// the analysis service and tests can swap in fakes, and every client is a
// thin HTTP wrapper that normalizes provider payloads into the domain types.
package provider

import (
	"context"

	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/poi"
)

// StationSource fetches charging stations around a point.
type StationSource interface {
	FetchStations(ctx context.Context, lat, lon, radiusKM float64, maxResults int) (*charging.StationSet, error)
}

// RegionSource fetches US county-level demographics by FIPS codes.
type RegionSource interface {
	FetchRegion(ctx context.Context, stateFIPS, countyFIPS string) (demographics.Region, error)
}

// CountrySource fetches country-level demographics by ISO alpha-3 code.
type CountrySource interface {
	FetchCountry(ctx context.Context, code string) (demographics.Country, error)
}

// POISource fetches categorized points of interest around a point.
type POISource interface {
	FetchPOIs(ctx context.Context, lat, lon float64, radiusM int) (*poi.Bundle, error)
}

// WeatherSource fetches the current temperature and a daily mean-temperature
// forecast for a point.
type WeatherSource interface {
	Temperatures(ctx context.Context, lat, lon float64, days int) (current float64, daily []float64, err error)
}

// NarrativeGenerator produces an LLM-written narrative from a prompt.
// Implementations must be safe to skip: analyses degrade gracefully when no
// generator is configured.
type NarrativeGenerator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Directory bundles every data source an analysis needs. Nil fields mean
// the capability is unavailable and dependent sections are omitted.
type Directory struct {
	Stations  StationSource
	Regions   RegionSource
	Countries CountrySource
	POIs      POISource
	Weather   WeatherSource
	Narrative NarrativeGenerator
}
