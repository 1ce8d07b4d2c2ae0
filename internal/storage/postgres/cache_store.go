package postgres

import (
	"context"
	"fmt"
	"time"

	"solana-address-checker/internal/storage"
)

// CacheStore implements storage.CacheStore using PostgreSQL.
type CacheStore struct {
	pool *Pool
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(pool *Pool) *CacheStore {
	return &CacheStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CacheStore = (*CacheStore)(nil)

// Get returns the value for key if it has not expired at now.
// Expired rows are left in place and overwritten by the next Set.
func (s *CacheStore) Get(ctx context.Context, key string, now time.Time) ([]byte, bool, error) {
	query := `
		SELECT value
		FROM response_cache
		WHERE key = $1 AND expires_at > $2
	`

	var value []byte
	err := s.pool.QueryRow(ctx, query, key, now).Scan(&value)
	if err != nil {
		if isNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}
	return value, true, nil
}

// Set upserts value under key until now+ttl.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, now time.Time) error {
	if key == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO response_cache (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`

	if _, err := s.pool.Exec(ctx, query, key, value, now.Add(ttl)); err != nil {
		return fmt.Errorf("set cache entry: %w", err)
	}
	return nil
}
