package cache

import (
	"context"
	"sync"
	"time"

	appreturns "github.com/aftersales/backend/internal/application/returns"
)

// statsEntry represents a cached snapshot with expiration
type statsEntry struct {
	stats     appreturns.StatsResponse
	expiresAt time.Time
}

// InMemoryStatsCache implements the statistics cache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryStatsCache struct {
	mu      sync.RWMutex
	entries map[string]statsEntry
	ttl     time.Duration
}

// NewInMemoryStatsCache creates a new in-memory statistics cache
func NewInMemoryStatsCache(ttl time.Duration) *InMemoryStatsCache {
	return &InMemoryStatsCache{
		entries: make(map[string]statsEntry),
		ttl:     ttl,
	}
}

// Get retrieves a cached statistics snapshot. A nil result without an
// error means the key is absent or expired.
func (c *InMemoryStatsCache) Get(ctx context.Context, key string) (*appreturns.StatsResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, nil
	}

	// Copy so callers cannot mutate the cached snapshot
	stats := e.stats
	return &stats, nil
}

// Set stores a statistics snapshot under the given key
func (c *InMemoryStatsCache) Set(ctx context.Context, key string, stats *appreturns.StatsResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = statsEntry{
		stats:     *stats,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops every cached snapshot
func (c *InMemoryStatsCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]statsEntry)
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryStatsCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryStatsCache implements StatsCache
var _ appreturns.StatsCache = (*InMemoryStatsCache)(nil)
