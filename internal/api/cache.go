package api

import (
	"os"
	"strconv"
	"sync"
)

// ReportCache is a thread-safe LRU cache for report blobs, keyed by analysis
// ID. Reports are immutable once written, so entries never need invalidation.
type ReportCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string][]byte
	order   []string // oldest first
}

// NewReportCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 50.
func NewReportCache(maxSize int) *ReportCache {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &ReportCache{
		maxSize: maxSize,
		entries: make(map[string][]byte),
	}
}

// NewReportCacheFromEnv creates a cache with size from REPORT_CACHE_SIZE.
func NewReportCacheFromEnv() *ReportCache {
	size := 50
	if v := os.Getenv("REPORT_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewReportCache(size)
}

// Get retrieves a report blob from the cache, or nil if not found.
func (c *ReportCache) Get(id string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[id]
	if !ok {
		return nil
	}
	c.moveToEnd(id)
	return data
}

// Put adds a report blob to the cache, evicting the oldest if full.
func (c *ReportCache) Put(id string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		c.entries[id] = data
		c.moveToEnd(id)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = data
	c.order = append(c.order, id)
}

func (c *ReportCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
