package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webforms/pkg/requestcontext"
)

func TestInMemoryStoreFixedWindow(t *testing.T) {
	store := NewInMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), base)

	// First three attempts fill the window.
	for i := 0; i < 3; i++ {
		res, err := store.Allow(ctx, "contact:1.2.3.4", 3, 15*time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d should be allowed", i+1)
		assert.Equal(t, 3-(i+1), res.Remaining)
		assert.Equal(t, base.Add(15*time.Minute), res.ResetAt)
	}

	// Fourth attempt inside the window is rejected.
	res, err := store.Allow(ctx, "contact:1.2.3.4", 3, 15*time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	// Rejection must not mutate the counter.
	assert.Equal(t, 3, store.Count(ctx, "contact:1.2.3.4"))

	// Once the window lapses the entry is replaced, not incremented.
	later := requestcontext.WithTime(context.Background(), base.Add(15*time.Minute+time.Second))
	res, err = store.Allow(later, "contact:1.2.3.4", 3, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, 1, store.Count(later, "contact:1.2.3.4"))
}

func TestInMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := requestcontext.WithTime(context.Background(), time.Now())

	for i := 0; i < 3; i++ {
		res, err := store.Allow(ctx, "contact:1.1.1.1", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}

	res, err := store.Allow(ctx, "contact:2.2.2.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "a different source must not inherit another source's window")
}

func TestInMemoryStoreReset(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
	}
	require.NoError(t, store.Reset(ctx, "k"))

	res, err := store.Allow(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

// The check-then-increment sequence must hold under concurrent requests
// from the same source: exactly limit attempts may pass per window.
func TestInMemoryStoreConcurrentAllows(t *testing.T) {
	store := NewInMemoryStore()
	ctx := requestcontext.WithTime(context.Background(), time.Now())

	const attempts = 50
	const limit = 10

	var wg sync.WaitGroup
	allowed := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Allow(ctx, "burst", limit, time.Minute)
			if err == nil && res.Allowed {
				allowed <- true
			}
		}()
	}
	wg.Wait()
	close(allowed)

	assert.Equal(t, limit, len(allowed))
}
