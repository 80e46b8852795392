package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold is the map size above which expired windows are swept
// inline during Allow.
const sweepThreshold = 4096

type window struct {
	count   int64
	resetAt time.Time
}

// InMemoryLimiter counts requests per key in a fixed window. Suitable for
// single-instance deployments; counters are not shared across processes.
type InMemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int64
	period  time.Duration
	now     func() time.Time
}

// NewInMemoryLimiter creates an in-memory fixed-window limiter.
// Non-positive limit or period fall back to the defaults.
func NewInMemoryLimiter(limit int64, period time.Duration) *InMemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if period <= 0 {
		period = DefaultWindow
	}
	return &InMemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow admits the request if the key has seen fewer than limit requests
// in the current window. A request that starts a new window resets the count.
func (l *InMemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		if len(l.windows) > sweepThreshold {
			l.sweep(now)
		}
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.period)}
		return Decision{Allowed: true, Limit: l.limit, Remaining: remaining(l.limit, 1)}, nil
	}

	w.count++
	return Decision{
		Allowed:   w.count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining(l.limit, w.count),
	}, nil
}

// sweep drops expired windows. Caller holds the mutex.
func (l *InMemoryLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)
