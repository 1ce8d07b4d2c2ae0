// Package ratelimit gates outbound calls per upstream host.
package ratelimit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/config"
	"solana-address-checker/internal/observability"
	"solana-address-checker/internal/storage"
)

// Window is the fixed counting window.
const Window = 60 * time.Second

// DefaultMaxPerWindow applies when the configured maximum is not positive.
const DefaultMaxPerWindow = 100

// Limiter is a fixed-window counter per host backed by a shared store.
type Limiter struct {
	enabled bool
	limit   int64
	store   storage.RateCounterStore
	logger  logrus.FieldLogger
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter from cfg.
func New(cfg config.RateLimit, store storage.RateCounterStore, logger logrus.FieldLogger, opts ...Option) *Limiter {
	limit := int64(cfg.RequestsPerWindow)
	if limit <= 0 {
		limit = DefaultMaxPerWindow
	}
	l := &Limiter{
		enabled: cfg.Enabled,
		limit:   limit,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether one more call to host fits in the current window.
// A denial is retryable later. Store failures allow the call.
func (l *Limiter) Allow(ctx context.Context, host string) bool {
	if l == nil || !l.enabled {
		return true
	}

	count, err := l.store.Incr(ctx, host, Window, l.now())
	if err != nil {
		observability.RecordStoreError("ratelimit")
		l.logger.WithFields(logrus.Fields{"host": host, "error": err}).Warn("rate counter unavailable, allowing call")
		return true
	}

	if count > l.limit {
		observability.RecordRateLimitDenial(host)
		l.logger.WithFields(logrus.Fields{"host": host, "count": count, "max": l.limit}).Debug("rate limit exceeded")
		return false
	}
	return true
}
