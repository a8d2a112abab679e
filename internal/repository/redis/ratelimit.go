package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:client:"

// RateLimiter throttles clients with a fixed one-minute window in Redis,
// aligned to the wall clock. The configured burst is added on top of the
// per-minute rate, so short spikes pass while sustained ones are rejected.
type RateLimiter struct {
	client *Client
	perMin int
	burst  int
}

// NewRateLimiter creates a limiter allowing perMin+burst requests per window
func NewRateLimiter(client *Client, perMin, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		perMin: perMin,
		burst:  burst,
	}
}

func rateLimitKey(key string) string {
	return rateLimitPrefix + key
}

// Allow records one request for key and reports whether it fits the current
// window, along with the remaining allowance and when the window resets
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	windowEnd := now.Truncate(time.Minute).Add(time.Minute)

	pipe := r.client.rdb.Pipeline()
	incr := pipe.Incr(ctx, rateLimitKey(key))
	pipe.ExpireNX(ctx, rateLimitKey(key), time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit check: %w", err)
	}

	count := incr.Val()
	limit := int64(r.perMin + r.burst)
	remaining := int(limit - count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= limit, remaining, windowEnd, nil
}

// Reset clears the window counter for a key
func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	return r.client.rdb.Del(ctx, rateLimitKey(key)).Err()
}
