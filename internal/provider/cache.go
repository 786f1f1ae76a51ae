package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/chargescope/chargescope/internal/observability"
	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/poi"
)

// ttlCache is a thread-safe LRU cache with per-entry expiry. The clock is
// injected so tests can advance time without sleeping.
type ttlCache[V any] struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*cacheEntry[V]
	head    *cacheEntry[V] // most recently used
	tail    *cacheEntry[V] // least recently used
}

type cacheEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *cacheEntry[V]
	next      *cacheEntry[V]
}

func newTTLCache[V any](maxEntries int, ttl time.Duration, clock clockwork.Clock) *ttlCache[V] {
	return &ttlCache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*cacheEntry[V]),
	}
}

func (c *ttlCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.clock.Now().After(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *ttlCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.clock.Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expires
		c.moveToFront(e)
		return
	}

	e := &cacheEntry[V]{key: key, value: value, expiresAt: expires}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *ttlCache[V]) moveToFront(e *cacheEntry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *ttlCache[V]) addToFront(e *cacheEntry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *ttlCache[V]) remove(e *cacheEntry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *ttlCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

// CacheOptions configures the caching decorators.
type CacheOptions struct {
	TTL        time.Duration
	MaxEntries int
	Clock      clockwork.Clock        // nil means the real clock
	Metrics    *observability.Metrics // nil disables lookup counters
}

func (o CacheOptions) clock() clockwork.Clock {
	if o.Clock == nil {
		return clockwork.NewRealClock()
	}
	return o.Clock
}

// NewCachedDirectory wraps each non-nil source in d with a TTL cache.
// Narrative generation is never cached: prompts embed per-analysis data.
func NewCachedDirectory(d Directory, opts CacheOptions) Directory {
	cached := Directory{Narrative: d.Narrative}
	if d.Stations != nil {
		cached.Stations = &cachedStations{inner: d.Stations, metrics: opts.Metrics, cache: newTTLCache[*charging.StationSet](opts.MaxEntries, opts.TTL, opts.clock())}
	}
	if d.Regions != nil {
		cached.Regions = &cachedRegions{inner: d.Regions, metrics: opts.Metrics, cache: newTTLCache[demographics.Region](opts.MaxEntries, opts.TTL, opts.clock())}
	}
	if d.Countries != nil {
		cached.Countries = &cachedCountries{inner: d.Countries, metrics: opts.Metrics, cache: newTTLCache[demographics.Country](opts.MaxEntries, opts.TTL, opts.clock())}
	}
	if d.POIs != nil {
		cached.POIs = &cachedPOIs{inner: d.POIs, metrics: opts.Metrics, cache: newTTLCache[*poi.Bundle](opts.MaxEntries, opts.TTL, opts.clock())}
	}
	if d.Weather != nil {
		cached.Weather = &cachedWeather{inner: d.Weather, metrics: opts.Metrics, cache: newTTLCache[weatherResult](opts.MaxEntries, opts.TTL, opts.clock())}
	}
	return cached
}

func recordLookup(m *observability.Metrics, source string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(source, result).Inc()
}

type cachedStations struct {
	inner   StationSource
	metrics *observability.Metrics
	cache   *ttlCache[*charging.StationSet]
}

func (c *cachedStations) FetchStations(ctx context.Context, lat, lon, radiusKM float64, maxResults int) (*charging.StationSet, error) {
	key := fmt.Sprintf("stations:%.4f,%.4f,%.1f,%d", lat, lon, radiusKM, maxResults)
	set, ok := c.cache.get(key)
	recordLookup(c.metrics, "stations", ok)
	if ok {
		return set, nil
	}
	set, err := c.inner.FetchStations(ctx, lat, lon, radiusKM, maxResults)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, set)
	return set, nil
}

type cachedRegions struct {
	inner   RegionSource
	metrics *observability.Metrics
	cache   *ttlCache[demographics.Region]
}

func (c *cachedRegions) FetchRegion(ctx context.Context, stateFIPS, countyFIPS string) (demographics.Region, error) {
	key := "region:" + stateFIPS + ":" + countyFIPS
	r, ok := c.cache.get(key)
	recordLookup(c.metrics, "regions", ok)
	if ok {
		return r, nil
	}
	r, err := c.inner.FetchRegion(ctx, stateFIPS, countyFIPS)
	if err != nil {
		return r, err
	}
	c.cache.put(key, r)
	return r, nil
}

type cachedCountries struct {
	inner   CountrySource
	metrics *observability.Metrics
	cache   *ttlCache[demographics.Country]
}

func (c *cachedCountries) FetchCountry(ctx context.Context, code string) (demographics.Country, error) {
	key := "country:" + code
	v, ok := c.cache.get(key)
	recordLookup(c.metrics, "countries", ok)
	if ok {
		return v, nil
	}
	v, err := c.inner.FetchCountry(ctx, code)
	if err != nil {
		return v, err
	}
	c.cache.put(key, v)
	return v, nil
}

type cachedPOIs struct {
	inner   POISource
	metrics *observability.Metrics
	cache   *ttlCache[*poi.Bundle]
}

func (c *cachedPOIs) FetchPOIs(ctx context.Context, lat, lon float64, radiusM int) (*poi.Bundle, error) {
	key := fmt.Sprintf("poi:%.4f,%.4f,%d", lat, lon, radiusM)
	b, ok := c.cache.get(key)
	recordLookup(c.metrics, "pois", ok)
	if ok {
		return b, nil
	}
	b, err := c.inner.FetchPOIs(ctx, lat, lon, radiusM)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, b)
	return b, nil
}

type weatherResult struct {
	current float64
	daily   []float64
}

type cachedWeather struct {
	inner   WeatherSource
	metrics *observability.Metrics
	cache   *ttlCache[weatherResult]
}

func (c *cachedWeather) Temperatures(ctx context.Context, lat, lon float64, days int) (float64, []float64, error) {
	key := fmt.Sprintf("weather:%.4f,%.4f,%d", lat, lon, days)
	r, ok := c.cache.get(key)
	recordLookup(c.metrics, "weather", ok)
	if ok {
		return r.current, r.daily, nil
	}
	current, daily, err := c.inner.Temperatures(ctx, lat, lon, days)
	if err != nil {
		return 0, nil, err
	}
	c.cache.put(key, weatherResult{current: current, daily: daily})
	return current, daily, nil
}
