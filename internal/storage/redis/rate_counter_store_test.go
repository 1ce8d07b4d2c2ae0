package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCounterStore_CountsAndResets(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewRateCounterStore(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := store.Incr(ctx, "api.host", time.Second, time.Now())
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	time.Sleep(1500 * time.Millisecond)

	n, err := store.Incr(ctx, "api.host", time.Second, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRateCounterStore_Concurrent(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewRateCounterStore(client)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Incr(ctx, "h", time.Minute, time.Now())
		}()
	}
	wg.Wait()

	n, err := store.Incr(ctx, "h", time.Minute, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(51), n)
}
