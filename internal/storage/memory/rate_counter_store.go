package memory

import (
	"context"
	"sync"
	"time"

	"solana-address-checker/internal/storage"
)

// rateCounter is a fixed-window counter for one host.
type rateCounter struct {
	windowStart time.Time
	count       int64
}

// RateCounterStore is an in-memory implementation of storage.RateCounterStore.
type RateCounterStore struct {
	mu       sync.Mutex
	counters map[string]*rateCounter
}

// NewRateCounterStore creates a new in-memory rate counter store.
func NewRateCounterStore() *RateCounterStore {
	return &RateCounterStore{
		counters: make(map[string]*rateCounter),
	}
}

// Incr increments the counter for key, starting a new window when the
// previous one has elapsed.
func (s *RateCounterStore) Incr(_ context.Context, key string, window time.Duration, now time.Time) (int64, error) {
	if key == "" {
		return 0, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.counters[key]
	if !exists || now.Sub(c.windowStart) >= window {
		s.counters[key] = &rateCounter{windowStart: now, count: 1}
		return 1, nil
	}

	c.count++
	return c.count, nil
}

var _ storage.RateCounterStore = (*RateCounterStore)(nil)
