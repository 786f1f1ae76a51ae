package provider

import (
	"context"
	"time"

	"github.com/chargescope/chargescope/internal/observability"
	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/poi"
)

// Instrument wraps each non-nil source in d with request counters and
// latency histograms. Wrap before caching so cache hits don't count as
// provider requests.
func Instrument(d Directory, m *observability.Metrics) Directory {
	if m == nil {
		return d
	}
	out := Directory{}
	if d.Stations != nil {
		out.Stations = &timedStations{inner: d.Stations, m: m}
	}
	if d.Regions != nil {
		out.Regions = &timedRegions{inner: d.Regions, m: m}
	}
	if d.Countries != nil {
		out.Countries = &timedCountries{inner: d.Countries, m: m}
	}
	if d.POIs != nil {
		out.POIs = &timedPOIs{inner: d.POIs, m: m}
	}
	if d.Weather != nil {
		out.Weather = &timedWeather{inner: d.Weather, m: m}
	}
	if d.Narrative != nil {
		out.Narrative = &timedNarrative{inner: d.Narrative, m: m}
	}
	return out
}

func record(m *observability.Metrics, source string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ProviderRequests.WithLabelValues(source, outcome).Inc()
	m.ProviderDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

type timedStations struct {
	inner StationSource
	m     *observability.Metrics
}

func (t *timedStations) FetchStations(ctx context.Context, lat, lon, radiusKM float64, maxResults int) (*charging.StationSet, error) {
	start := time.Now()
	set, err := t.inner.FetchStations(ctx, lat, lon, radiusKM, maxResults)
	record(t.m, "stations", start, err)
	return set, err
}

type timedRegions struct {
	inner RegionSource
	m     *observability.Metrics
}

func (t *timedRegions) FetchRegion(ctx context.Context, stateFIPS, countyFIPS string) (demographics.Region, error) {
	start := time.Now()
	r, err := t.inner.FetchRegion(ctx, stateFIPS, countyFIPS)
	record(t.m, "regions", start, err)
	return r, err
}

type timedCountries struct {
	inner CountrySource
	m     *observability.Metrics
}

func (t *timedCountries) FetchCountry(ctx context.Context, code string) (demographics.Country, error) {
	start := time.Now()
	c, err := t.inner.FetchCountry(ctx, code)
	record(t.m, "countries", start, err)
	return c, err
}

type timedPOIs struct {
	inner POISource
	m     *observability.Metrics
}

func (t *timedPOIs) FetchPOIs(ctx context.Context, lat, lon float64, radiusM int) (*poi.Bundle, error) {
	start := time.Now()
	b, err := t.inner.FetchPOIs(ctx, lat, lon, radiusM)
	record(t.m, "pois", start, err)
	return b, err
}

type timedWeather struct {
	inner WeatherSource
	m     *observability.Metrics
}

func (t *timedWeather) Temperatures(ctx context.Context, lat, lon float64, days int) (float64, []float64, error) {
	start := time.Now()
	current, daily, err := t.inner.Temperatures(ctx, lat, lon, days)
	record(t.m, "weather", start, err)
	return current, daily, err
}

type timedNarrative struct {
	inner NarrativeGenerator
	m     *observability.Metrics
}

func (t *timedNarrative) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	start := time.Now()
	text, err := t.inner.Generate(ctx, systemPrompt, prompt)
	record(t.m, "narrative", start, err)
	return text, err
}
