package cache

import (
	"context"
	"testing"
	"time"

	appreturns "github.com/aftersales/backend/internal/application/returns"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats() *appreturns.StatsResponse {
	return &appreturns.StatsResponse{
		Total:       3,
		Pending:     2,
		Refunded:    1,
		TotalAmount: decimal.NewFromInt(350),
	}
}

func TestInMemoryStatsCache_GetSet(t *testing.T) {
	cache := NewInMemoryStatsCache(time.Minute)
	ctx := context.Background()

	t.Run("miss on absent key", func(t *testing.T) {
		stats, err := cache.Get(ctx, "all")
		require.NoError(t, err)
		assert.Nil(t, stats)
	})

	t.Run("returns stored snapshot", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "all", sampleStats()))

		stats, err := cache.Get(ctx, "all")
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Pending)
		assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(350)))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "refunded", &appreturns.StatsResponse{Total: 1, Refunded: 1}))

		stats, err := cache.Get(ctx, "refunded")
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, 1, stats.Total)

		other, err := cache.Get(ctx, "all")
		require.NoError(t, err)
		require.NotNil(t, other)
		assert.Equal(t, 3, other.Total)
	})

	t.Run("returned snapshot is a copy", func(t *testing.T) {
		stats, err := cache.Get(ctx, "all")
		require.NoError(t, err)
		require.NotNil(t, stats)

		stats.Total = 999

		again, err := cache.Get(ctx, "all")
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, 3, again.Total)
	})
}

func TestInMemoryStatsCache_Expiration(t *testing.T) {
	cache := NewInMemoryStatsCache(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "all", sampleStats()))

	time.Sleep(20 * time.Millisecond)

	stats, err := cache.Get(ctx, "all")
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestInMemoryStatsCache_Invalidate(t *testing.T) {
	cache := NewInMemoryStatsCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "all", sampleStats()))
	require.NoError(t, cache.Set(ctx, "requested", sampleStats()))
	assert.Equal(t, 2, cache.Size())

	require.NoError(t, cache.Invalidate(ctx))

	assert.Equal(t, 0, cache.Size())

	stats, err := cache.Get(ctx, "all")
	require.NoError(t, err)
	assert.Nil(t, stats)
}
