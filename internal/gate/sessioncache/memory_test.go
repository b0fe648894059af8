package sessioncache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/sentinel"
)

func TestMemorySetGet(t *testing.T) {
	cache := NewMemory(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sid-1", Entry{TelegramID: "42", Authorized: true}))

	entry, err := cache.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "42", entry.TelegramID)
	assert.True(t, entry.Authorized)
}

func TestMemoryMissReturnsNotFound(t *testing.T) {
	cache := NewMemory(time.Hour)

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryEntryExpires(t *testing.T) {
	cache := NewMemory(time.Minute)
	ctx := context.Background()

	now := time.Now()
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set(ctx, "sid-1", Entry{TelegramID: "42", Authorized: true}))

	cache.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := cache.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryClear(t *testing.T) {
	cache := NewMemory(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sid-1", Entry{TelegramID: "42", Authorized: true}))
	require.NoError(t, cache.Clear(ctx, "sid-1"))

	_, err := cache.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	// Clearing a missing key is a no-op.
	assert.NoError(t, cache.Clear(ctx, "sid-1"))
}
