package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vending:login-attempts:"

// AttemptLimiter allows at most limit login attempts per key within window.
// The window starts with the first attempt and is cleared by Reset.
type AttemptLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

func NewAttemptLimiter(client redis.Cmdable, limit int64, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (l *AttemptLimiter) Register(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("redis incr: %w", err)
	}

	if incr.Val() <= l.limit {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis ttl: %w", err)
	}
	if ttl < 0 {
		ttl = l.window
	}

	return false, ttl, nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}

	return nil
}

// NopLimiter never throttles. Used when no redis address is configured.
type NopLimiter struct{}

func (NopLimiter) Register(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}

func (NopLimiter) Reset(context.Context, string) error {
	return nil
}
