package storage

import (
	"context"
	"time"
)

// CacheStore is the shared key/value store behind the response cache.
// Entries expire passively: a read after expiry reports a miss.
type CacheStore interface {
	// Get returns the value for key. ok is false on miss or expiry.
	Get(ctx context.Context, key string, now time.Time) (value []byte, ok bool, err error)

	// Set stores value under key until now+ttl. Last writer wins.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, now time.Time) error
}

// RateCounterStore holds fixed-window request counters per host.
type RateCounterStore interface {
	// Incr atomically increments the counter for key and returns the new count.
	// The first call in a window, or the first call after the window elapsed,
	// starts a new window at now with count 1.
	Incr(ctx context.Context, key string, window time.Duration, now time.Time) (int64, error)
}
