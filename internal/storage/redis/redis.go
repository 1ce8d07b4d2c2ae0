// Package redis provides Redis-backed shared stores.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
)

// Options configures the Redis connection.
type Options struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// Client wraps goredis.Client for dependency injection.
type Client struct {
	*goredis.Client
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.PoolSize <= 0 {
		opts.PoolSize = 100
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Close closes the client.
func (c *Client) Close() error {
	return c.Client.Close()
}
