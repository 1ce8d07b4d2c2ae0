// Package cache is the short-TTL response cache in front of upstream calls.
package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/config"
	"solana-address-checker/internal/idhash"
	"solana-address-checker/internal/storage"
)

// DefaultTTL applies when the configured TTL is not positive.
const DefaultTTL = 300 * time.Second

// ResponseCache stores raw upstream payloads under deterministic keys.
// When disabled, Get always misses and Set does nothing.
type ResponseCache struct {
	enabled bool
	ttl     time.Duration
	store   storage.CacheStore
	logger  logrus.FieldLogger
	now     func() time.Time
}

// Option configures a ResponseCache.
type Option func(*ResponseCache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) {
		c.now = now
	}
}

// New creates a ResponseCache from cfg.
func New(cfg config.Cache, store storage.CacheStore, logger logrus.FieldLogger, opts ...Option) *ResponseCache {
	ttl := cfg.TTL()
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &ResponseCache{
		enabled: cfg.Enabled,
		ttl:     ttl,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key for a service call.
func Key(service, address string, params map[string]string) string {
	return idhash.CacheKey(service, address, params)
}

// Get returns the cached bytes for key. Store errors count as a miss.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || !c.enabled {
		return nil, false
	}
	value, ok, err := c.store.Get(ctx, key, c.now())
	if err != nil {
		c.logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache get failed")
		return nil, false
	}
	return value, ok
}

// Set stores value under key for ttl; a non-positive ttl uses the default.
func (c *ResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || !c.enabled {
		return
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.store.Set(ctx, key, value, ttl, c.now()); err != nil {
		c.logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache set failed")
	}
}
