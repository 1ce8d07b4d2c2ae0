package postgres

import (
	"context"
	"fmt"
	"time"

	"solana-address-checker/internal/storage"
)

// RateCounterStore implements storage.RateCounterStore using PostgreSQL.
// The window reset and increment happen in a single upsert, so concurrent
// callers serialize on the row lock and no update is lost.
type RateCounterStore struct {
	pool *Pool
}

// NewRateCounterStore creates a new RateCounterStore.
func NewRateCounterStore(pool *Pool) *RateCounterStore {
	return &RateCounterStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RateCounterStore = (*RateCounterStore)(nil)

// Incr increments the counter for key and returns the new count.
func (s *RateCounterStore) Incr(ctx context.Context, key string, window time.Duration, now time.Time) (int64, error) {
	if key == "" {
		return 0, storage.ErrInvalidInput
	}

	query := `
		INSERT INTO rate_counters (host_key, window_start, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (host_key) DO UPDATE
		SET window_start = CASE
				WHEN rate_counters.window_start <= $3 THEN EXCLUDED.window_start
				ELSE rate_counters.window_start
			END,
			count = CASE
				WHEN rate_counters.window_start <= $3 THEN 1
				ELSE rate_counters.count + 1
			END
		RETURNING count
	`

	var count int64
	if err := s.pool.QueryRow(ctx, query, key, now, now.Add(-window)).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment rate counter: %w", err)
	}
	return count, nil
}
