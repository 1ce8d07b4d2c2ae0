package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCounterStore_IncrementsWithinWindow(t *testing.T) {
	store := NewRateCounterStore()
	ctx := context.Background()
	start := time.Unix(1700000000, 0)

	for i := int64(1); i <= 5; i++ {
		n, err := store.Incr(ctx, "api.example.com", time.Minute, start.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}

func TestRateCounterStore_ResetsAfterWindow(t *testing.T) {
	store := NewRateCounterStore()
	ctx := context.Background()
	start := time.Unix(1700000000, 0)

	_, _ = store.Incr(ctx, "h", time.Minute, start)
	_, _ = store.Incr(ctx, "h", time.Minute, start.Add(10*time.Second))

	n, err := store.Incr(ctx, "h", time.Minute, start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "window elapsed, counter must reset")

	n, _ = store.Incr(ctx, "h", time.Minute, start.Add(70*time.Second))
	assert.Equal(t, int64(2), n, "new window starts at the reset call")
}

func TestRateCounterStore_KeysIndependent(t *testing.T) {
	store := NewRateCounterStore()
	ctx := context.Background()
	now := time.Now()

	_, _ = store.Incr(ctx, "a", time.Minute, now)
	_, _ = store.Incr(ctx, "a", time.Minute, now)
	n, _ := store.Incr(ctx, "b", time.Minute, now)
	assert.Equal(t, int64(1), n)
}

func TestRateCounterStore_NoLostUpdates(t *testing.T) {
	store := NewRateCounterStore()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Incr(ctx, "h", time.Minute, now)
		}()
	}
	wg.Wait()

	n, _ := store.Incr(ctx, "h", time.Minute, now)
	assert.Equal(t, int64(201), n)
}
