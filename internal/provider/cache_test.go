package provider

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/demographics"
)

type countingStations struct {
	calls int
	set   *charging.StationSet
}

func (c *countingStations) FetchStations(_ context.Context, lat, lon, radiusKM float64, maxResults int) (*charging.StationSet, error) {
	c.calls++
	return c.set, nil
}

type countingRegions struct {
	calls int
}

func (c *countingRegions) FetchRegion(_ context.Context, stateFIPS, countyFIPS string) (demographics.Region, error) {
	c.calls++
	return demographics.Region{Name: stateFIPS + countyFIPS}, nil
}

func TestCachedDirectory_HitAndExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingStations{set: &charging.StationSet{RadiusKM: 10}}
	dir := NewCachedDirectory(Directory{Stations: inner}, CacheOptions{
		TTL:        time.Hour,
		MaxEntries: 8,
		Clock:      clock,
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := dir.Stations.FetchStations(ctx, 37.7749, -122.4194, 10, 100); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call for repeated fetch, got %d", inner.calls)
	}

	// Different parameters miss the cache.
	if _, err := dir.Stations.FetchStations(ctx, 37.7749, -122.4194, 25, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls after radius change, got %d", inner.calls)
	}

	// After TTL passes, the entry is refetched.
	clock.Advance(time.Hour + time.Minute)
	if _, err := dir.Stations.FetchStations(ctx, 37.7749, -122.4194, 10, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected refetch after TTL expiry, got %d calls", inner.calls)
	}
}

func TestCachedDirectory_LRUEviction(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingRegions{}
	dir := NewCachedDirectory(Directory{Regions: inner}, CacheOptions{
		TTL:        time.Hour,
		MaxEntries: 2,
		Clock:      clock,
	})

	ctx := context.Background()
	dir.Regions.FetchRegion(ctx, "06", "001")
	dir.Regions.FetchRegion(ctx, "06", "002")
	dir.Regions.FetchRegion(ctx, "06", "003") // evicts 001
	if inner.calls != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", inner.calls)
	}

	// 002 and 003 are cached, 001 was evicted.
	dir.Regions.FetchRegion(ctx, "06", "002")
	dir.Regions.FetchRegion(ctx, "06", "003")
	if inner.calls != 3 {
		t.Errorf("expected cache hits for recent entries, got %d calls", inner.calls)
	}
	dir.Regions.FetchRegion(ctx, "06", "001")
	if inner.calls != 4 {
		t.Errorf("expected refetch of evicted entry, got %d calls", inner.calls)
	}
}

func TestCachedDirectory_NilSources(t *testing.T) {
	dir := NewCachedDirectory(Directory{}, CacheOptions{TTL: time.Minute, MaxEntries: 4})
	if dir.Stations != nil || dir.Regions != nil || dir.Countries != nil || dir.POIs != nil || dir.Weather != nil {
		t.Error("nil sources must stay nil after wrapping")
	}
}
