// Package ratelimit provides a small attempt-throttling abstraction backed by
// Redis.
//
// It is used to slow down credential guessing: login attempts per email and
// one-time-code checks per user are counted in fixed windows.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether another attempt is allowed for a key.
type Limiter interface {
	// Allow records an attempt for key and reports whether it is within the
	// configured limit.
	Allow(ctx context.Context, key string) (bool, error)
}

// FixedWindow is a Redis-backed fixed-window counter.
//
// The first attempt in a window creates the counter with the window TTL;
// subsequent attempts increment it. Counting is fail-open: callers decide how
// to treat Redis errors.
type FixedWindow struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

const (
	defaultLimit  int64 = 10
	defaultWindow       = time.Minute
)

// NewFixedWindow returns a limiter allowing limit attempts per window.
func NewFixedWindow(client *redis.Client, prefix string, limit int64, window time.Duration) *FixedWindow {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}

	return &FixedWindow{
		client: client,
		prefix: "ratelimit:" + prefix + ":",
		limit:  limit,
		window: window,
	}
}

// Allow records an attempt and reports whether key is still within its limit.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	fk := l.prefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, fk)
	pipe.ExpireNX(ctx, fk, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= l.limit, nil
}
