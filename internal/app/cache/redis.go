// Package cache holds the Redis-backed volatile tiers: the transcript
// fast cache and the job lifecycle store. Both are optimizations over
// the durable Postgres tier; callers are expected to treat every failure
// here as non-fatal.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// opTimeout bounds every cache call. These tiers must fail fast: a slow
// Redis is worse than a cache miss.
const opTimeout = 2 * time.Second

// NewRedisClient connects to Redis from a URL and verifies the
// connection with a ping.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
