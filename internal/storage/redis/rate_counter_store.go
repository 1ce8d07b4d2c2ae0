package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"solana-address-checker/internal/storage"
)

const rateKeyPrefix = "checker:rate:"

// RateCounterStore implements storage.RateCounterStore with a fixed window
// per key: the key is created with the window as expiry and incremented
// in the same MULTI/EXEC transaction.
type RateCounterStore struct {
	client *Client
}

// NewRateCounterStore creates a new RateCounterStore.
func NewRateCounterStore(client *Client) *RateCounterStore {
	return &RateCounterStore{client: client}
}

// Compile-time interface check.
var _ storage.RateCounterStore = (*RateCounterStore)(nil)

// Incr increments the counter for key and returns the new count.
func (s *RateCounterStore) Incr(ctx context.Context, key string, window time.Duration, _ time.Time) (int64, error) {
	if key == "" {
		return 0, storage.ErrInvalidInput
	}

	redisKey := rateKeyPrefix + key
	var incr *goredis.IntCmd

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}

	return incr.Val(), nil
}
