// Package ratelimit provides a Redis-backed fixed-window rate limiter used to
// throttle OTP issuance and verification attempts.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLimitExceeded is returned when the caller has exhausted the window quota.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Limiter counts attempts per key within a fixed window.
type Limiter interface {
	// Allow consumes one attempt for the key. It returns ErrLimitExceeded
	// once more than limit attempts land inside a single window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) error

	// Reset clears the counter for the key.
	Reset(ctx context.Context, key string) error
}

// FixedWindow implements Limiter with a Redis counter per key. The window
// starts at the first attempt and expires as a whole, so a burst right after
// expiry gets a fresh quota.
type FixedWindow struct {
	client *redis.Client
	prefix string
}

// New constructs a FixedWindow limiter on the given Redis client.
func New(client *redis.Client) *FixedWindow {
	return &FixedWindow{
		client: client,
		prefix: "ratelimit:",
	}
}

// Allow consumes one attempt for the key.
func (f *FixedWindow) Allow(ctx context.Context, key string, limit int, window time.Duration) error {
	fk := f.prefix + key

	count, err := f.client.Incr(ctx, fk).Result()
	if err != nil {
		return err
	}

	if count == 1 {
		if err := f.client.Expire(ctx, fk, window).Err(); err != nil {
			return err
		}
	}

	if count > int64(limit) {
		return ErrLimitExceeded
	}

	return nil
}

// Reset clears the counter for the key.
func (f *FixedWindow) Reset(ctx context.Context, key string) error {
	return f.client.Del(ctx, f.prefix+key).Err()
}
