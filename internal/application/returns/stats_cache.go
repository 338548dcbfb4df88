package returns

import "context"

// StatsCache caches computed dashboard statistics between mutations.
// A nil-result Get without error means a cache miss. Implementations are
// expected to degrade gracefully: callers treat any cache error as a miss
// and recompute from the store.
type StatsCache interface {
	// Get retrieves cached statistics for the given filter key
	Get(ctx context.Context, key string) (*StatsResponse, error)

	// Set stores statistics under the given filter key
	Set(ctx context.Context, key string, stats *StatsResponse) error

	// Invalidate drops all cached statistics entries
	Invalidate(ctx context.Context) error
}
