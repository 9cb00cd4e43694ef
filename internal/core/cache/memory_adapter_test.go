package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_GetSet(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	err := adapter.Set(ctx, "key", []byte("value"), 0)
	require.NoError(t, err)

	value, err := adapter.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryAdapter_GetNotFound(t *testing.T) {
	adapter := NewMemoryAdapter()

	_, err := adapter.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAdapter_TTL(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	err := adapter.Set(ctx, "short", []byte("value"), 10*time.Millisecond)
	require.NoError(t, err)

	_, err = adapter.Get(ctx, "short")
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = adapter.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAdapter_Delete(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 0))
	require.NoError(t, adapter.Delete(ctx, "key"))

	_, err := adapter.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestMemoryAdapter_CopyOnRead verifies that mutating a returned value does
// not corrupt the cached entry.
func TestMemoryAdapter_CopyOnRead(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("abc"), 0))

	first, err := adapter.Get(ctx, "key")
	require.NoError(t, err)
	first[0] = 'z'

	second, err := adapter.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), second)
}

func TestMemoryAdapter_PingClose(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	assert.NoError(t, adapter.Ping(ctx))

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 0))
	require.NoError(t, adapter.Close())

	_, err := adapter.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}
