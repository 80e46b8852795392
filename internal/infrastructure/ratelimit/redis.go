package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "ratelimit:"

// RedisLimiter shares a fixed-window counter across instances through Redis.
// Each key is INCRed per request; the TTL is set when the window opens, so
// the counter expires exactly one period after its first request.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
	limit     int64
	period    time.Duration
}

// RedisConfig holds Redis connection settings for the shared limiter.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLimiter connects to Redis and verifies the connection.
func NewRedisLimiter(cfg RedisConfig, keyPrefix string, limit int64, period time.Duration) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisLimiterWithClient(client, keyPrefix, limit, period), nil
}

// NewRedisLimiterWithClient creates a limiter on an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisLimiterWithClient(client *redis.Client, keyPrefix string, limit int64, period time.Duration) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if period <= 0 {
		period = DefaultWindow
	}
	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		period:    period,
	}
}

// Allow increments the per-key counter and admits the request while the
// count stays within the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := l.keyPrefix + key

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.period).Err(); err != nil {
			return Decision{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return Decision{
		Allowed:   n <= l.limit,
		Limit:     l.limit,
		Remaining: remaining(l.limit, n),
	}, nil
}

// Close closes the underlying Redis client.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

var _ Limiter = (*RedisLimiter)(nil)
