package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, 10)

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v1"))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v1", val)

	require.NoError(t, cache.Set(ctx, "k", "v2"))
	val, _ = cache.Get(ctx, "k")
	assert.Equal(t, "v2", val)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_ExpiredEntriesMiss(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	cache := newMemoryCache(time.Minute, 10, clock.Now)

	require.NoError(t, cache.Set(ctx, "k", "v"))

	clock.t = clock.t.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_ZeroTTLKeepsEntries(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	cache := newMemoryCache(0, 10, clock.Now)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	clock.t = clock.t.Add(1000 * time.Hour)

	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
}

func TestMemoryCache_CapSweepsExpiredFirst(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	cache := newMemoryCache(time.Minute, 2, clock.Now)

	require.NoError(t, cache.Set(ctx, "old", "v"))
	clock.t = clock.t.Add(30 * time.Second)
	require.NoError(t, cache.Set(ctx, "mid", "v"))
	clock.t = clock.t.Add(45 * time.Second) // "old" expired, "mid" live

	require.NoError(t, cache.Set(ctx, "new", "v"))

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(ctx, "mid")
	assert.True(t, ok)
	_, ok = cache.Get(ctx, "new")
	assert.True(t, ok)
}

func TestMemoryCache_CapEvictsSoonestExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	cache := newMemoryCache(time.Hour, 2, clock.Now)

	require.NoError(t, cache.Set(ctx, "a", "v"))
	clock.t = clock.t.Add(time.Second)
	require.NoError(t, cache.Set(ctx, "b", "v"))
	clock.t = clock.t.Add(time.Second)
	require.NoError(t, cache.Set(ctx, "c", "v"))

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)

	// overwriting an existing key never evicts
	require.NoError(t, cache.Set(ctx, "b", "v2"))
	assert.Equal(t, 2, cache.Len())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			_ = cache.Set(ctx, key, "value")
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Len())
}
