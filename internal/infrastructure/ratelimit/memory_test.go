package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("admits up to the limit and rejects the next request", func(t *testing.T) {
		limiter := NewInMemoryLimiter(100, time.Minute)

		for i := 0; i < 100; i++ {
			d, err := limiter.Allow(ctx, "client-a")
			require.NoError(t, err)
			assert.True(t, d.Allowed, "request %d should be admitted", i+1)
		}

		d, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.False(t, d.Allowed, "request 101 should be rejected")
		assert.Equal(t, int64(0), d.Remaining)
	})

	t.Run("keys are counted independently", func(t *testing.T) {
		limiter := NewInMemoryLimiter(1, time.Minute)

		d, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, d.Allowed)

		d, err = limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.False(t, d.Allowed)

		d, err = limiter.Allow(ctx, "client-b")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("window elapse resets the count", func(t *testing.T) {
		limiter := NewInMemoryLimiter(2, time.Minute)
		now := time.Unix(1700000000, 0)
		limiter.now = func() time.Time { return now }

		for i := 0; i < 2; i++ {
			d, err := limiter.Allow(ctx, "client-a")
			require.NoError(t, err)
			assert.True(t, d.Allowed)
		}
		d, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.False(t, d.Allowed)

		now = now.Add(time.Minute)
		d, err = limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, int64(1), d.Remaining)
	})

	t.Run("remaining decreases with each request", func(t *testing.T) {
		limiter := NewInMemoryLimiter(3, time.Minute)

		d, _ := limiter.Allow(ctx, "client-a")
		assert.Equal(t, int64(2), d.Remaining)
		d, _ = limiter.Allow(ctx, "client-a")
		assert.Equal(t, int64(1), d.Remaining)
		d, _ = limiter.Allow(ctx, "client-a")
		assert.Equal(t, int64(0), d.Remaining)
	})

	t.Run("non-positive settings fall back to defaults", func(t *testing.T) {
		limiter := NewInMemoryLimiter(0, 0)
		assert.Equal(t, int64(DefaultLimit), limiter.limit)
		assert.Equal(t, DefaultWindow, limiter.period)
	})
}

func TestInMemoryLimiter_Sweep(t *testing.T) {
	limiter := NewInMemoryLimiter(10, time.Minute)
	now := time.Unix(1700000000, 0)
	limiter.now = func() time.Time { return now }

	_, err := limiter.Allow(context.Background(), "client-a")
	require.NoError(t, err)
	_, err = limiter.Allow(context.Background(), "client-b")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	limiter.mu.Lock()
	limiter.sweep(now)
	limiter.mu.Unlock()

	assert.Empty(t, limiter.windows)
}
