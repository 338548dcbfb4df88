package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appreturns "github.com/aftersales/backend/internal/application/returns"
	"github.com/aftersales/backend/internal/domain/returns"
	"github.com/redis/go-redis/v9"
)

// RedisStatsCache implements the statistics cache using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share cached statistics snapshots.
type RedisStatsCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStatsCache creates a new Redis-based statistics cache
func NewRedisStatsCache(cfg RedisConfig, ttl time.Duration) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStatsCache{
		client:    client,
		keyPrefix: "returns:stats:",
		ttl:       ttl,
	}, nil
}

// NewRedisStatsCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisStatsCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStatsCache {
	if keyPrefix == "" {
		keyPrefix = "returns:stats:"
	}
	return &RedisStatsCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get retrieves a cached statistics snapshot. A nil result without an
// error means the key is absent.
func (c *RedisStatsCache) Get(ctx context.Context, key string) (*appreturns.StatsResponse, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached statistics: %w", err)
	}

	var stats appreturns.StatsResponse
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached statistics: %w", err)
	}
	return &stats, nil
}

// Set stores a statistics snapshot under the given key with the configured TTL
func (c *RedisStatsCache) Set(ctx context.Context, key string, stats *appreturns.StatsResponse) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache statistics: %w", err)
	}
	return nil
}

// Invalidate drops every cached snapshot. Snapshots are keyed by status
// filter plus the unfiltered "all" key, so the full key set is known.
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	keys := make([]string, 0, len(returns.AllStatuses())+1)
	keys = append(keys, c.keyPrefix+"all")
	for _, status := range returns.AllStatuses() {
		keys = append(keys, c.keyPrefix+status.String())
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached statistics: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisStatsCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisStatsCache implements StatsCache
var _ appreturns.StatsCache = (*RedisStatsCache)(nil)
