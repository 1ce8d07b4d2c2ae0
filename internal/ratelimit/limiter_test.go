package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solana-address-checker/internal/config"
	"solana-address-checker/internal/logging"
	"solana-address-checker/internal/storage/memory"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestLimiter(max int, enabled bool, clock *fakeClock) *Limiter {
	return New(
		config.RateLimit{Enabled: enabled, RequestsPerWindow: max},
		memory.NewRateCounterStore(),
		logging.Discard(),
		WithClock(clock.Now),
	)
}

func TestLimiter_DeniesNPlusOne(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := newTestLimiter(3, true, clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "api.host"), "call %d", i+1)
		clock.t = clock.t.Add(time.Second)
	}
	assert.False(t, l.Allow(ctx, "api.host"), "4th call within window must be denied")
	assert.False(t, l.Allow(ctx, "api.host"))
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := newTestLimiter(2, true, clock)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "h"))
	assert.True(t, l.Allow(ctx, "h"))
	assert.False(t, l.Allow(ctx, "h"))

	clock.t = clock.t.Add(Window)
	assert.True(t, l.Allow(ctx, "h"), "call after window elapsed is allowed")
	assert.True(t, l.Allow(ctx, "h"))
	assert.False(t, l.Allow(ctx, "h"))
}

func TestLimiter_HostsIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	l := newTestLimiter(1, true, clock)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "a"))
	assert.False(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "b"))
}

func TestLimiter_Disabled(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	l := newTestLimiter(1, false, clock)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(context.Background(), "h"))
	}
}

func TestLimiter_DefaultMax(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	l := newTestLimiter(0, true, clock)
	ctx := context.Background()

	for i := 0; i < DefaultMaxPerWindow; i++ {
		assert.True(t, l.Allow(ctx, "h"))
	}
	assert.False(t, l.Allow(ctx, "h"))
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration, time.Time) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestLimiter_StoreErrorFailsOpen(t *testing.T) {
	l := New(config.RateLimit{Enabled: true, RequestsPerWindow: 1}, failingStore{}, logging.Discard())
	assert.True(t, l.Allow(context.Background(), "h"))
	assert.True(t, l.Allow(context.Background(), "h"))
}

func TestLimiter_NilAllows(t *testing.T) {
	var l *Limiter
	assert.True(t, l.Allow(context.Background(), "h"))
}
