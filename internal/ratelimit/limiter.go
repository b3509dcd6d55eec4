package ratelimit

import (
	"context"
	"fmt"
	"time"

	"star-casino/internal/config"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter kept in redis.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// New returns nil when no redis address is configured.
func New(cfg config.RedisConfig, limit int, window time.Duration) (*Limiter, error) {
	if cfg.Addr == "" || limit <= 0 {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewWithClient(client, limit, window), nil
}

func NewWithClient(client *redis.Client, limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{client: client, limit: limit, window: window, prefix: "ratelimit:"}
}

// Allow counts one hit for key and reports whether it is within the window budget.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit %s: expire: %w", key, err)
		}
	}
	return count <= int64(l.limit), nil
}

func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}

func (l *Limiter) Close() error {
	return l.client.Close()
}
