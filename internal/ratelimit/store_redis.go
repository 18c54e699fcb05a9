package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"webforms/pkg/requestcontext"
)

// Redis key prefix for rate-limit windows.
const redisKeyPrefix = "rl:"

// RedisStore implements Store on Redis so the limit holds across server
// instances. Windows are INCR counters whose TTL is set once when the window
// opens; Redis expiry replaces the lapsed window.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store. The client lifecycle is
// managed by the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Allow consumes one attempt for key. INCR and the conditional EXPIRE run in
// one pipeline so two racing first requests cannot leave the key without a
// TTL.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	redisKey := redisKeyPrefix + key

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}

	count := incr.Val()
	now := requestcontext.Now(ctx)

	resetAt := now.Add(window)
	if ttl, err := s.client.TTL(ctx, redisKey).Result(); err == nil && ttl > 0 {
		resetAt = now.Add(ttl)
	}

	if count > int64(limit) {
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(count),
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the window for a key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
