package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"solana-address-checker/internal/storage"
)

const cacheKeyPrefix = "checker:cache:"

// CacheStore implements storage.CacheStore on Redis keys with native TTL.
// The now argument is ignored; Redis owns the clock.
type CacheStore struct {
	client *Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *Client) *CacheStore {
	return &CacheStore{client: client}
}

// Compile-time interface check.
var _ storage.CacheStore = (*CacheStore)(nil)

// Get returns the value for key. Expired keys are gone in Redis and miss.
func (s *CacheStore) Get(ctx context.Context, key string, _ time.Time) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value with the given ttl. A non-positive ttl stores nothing.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, _ time.Time) error {
	if key == "" {
		return storage.ErrInvalidInput
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, cacheKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
