package memory

import (
	"context"
	"sync"
	"time"

	"solana-address-checker/internal/storage"
)

// cacheEntry is one stored response.
type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// CacheStore is an in-memory implementation of storage.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the value for key if present and not expired.
// Expired entries are evicted on read.
func (s *CacheStore) Get(_ context.Context, key string, now time.Time) ([]byte, bool, error) {
	s.mu.RLock()
	e, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := s.entries[key]; ok && !now.Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	valueCopy := make([]byte, len(e.value))
	copy(valueCopy, e.value)
	return valueCopy, true, nil
}

// Set stores value under key until now+ttl.
func (s *CacheStore) Set(_ context.Context, key string, value []byte, ttl time.Duration, now time.Time) error {
	if key == "" {
		return storage.ErrInvalidInput
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = cacheEntry{value: valueCopy, expiresAt: now.Add(ttl)}
	return nil
}

var _ storage.CacheStore = (*CacheStore)(nil)
