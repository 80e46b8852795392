package ratelimit

import (
	"context"
	"time"
)

// DefaultLimit is the number of requests admitted per client key per window.
const DefaultLimit = 100

// DefaultWindow is the fixed counting window.
const DefaultWindow = 60 * time.Second

// Decision reports the outcome of a single admission check.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
}

// Limiter admits or rejects a request for a client key within a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func remaining(limit, count int64) int64 {
	if count >= limit {
		return 0
	}
	return limit - count
}
