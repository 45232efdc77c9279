// SPDX-License-Identifier: MPL-2.0

package doctor

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisURL is where the query tool looks for its response cache.
const DefaultRedisURL = "redis://localhost:6379/0"

type (
	// CacheProbe checks that the response cache backend answers.
	CacheProbe interface {
		Probe(ctx context.Context, url string) (addr string, err error)
	}

	// RedisProbe pings a Redis server with go-redis.
	RedisProbe struct{}
)

// Probe connects to url, sends PING and closes the connection.
func (RedisProbe) Probe(ctx context.Context, url string) (string, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return "", fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	// One attempt is enough for a diagnostic.
	opts.MaxRetries = -1

	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	if err := client.Ping(ctx).Err(); err != nil {
		return opts.Addr, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	return opts.Addr, nil
}
