package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prn-tf/starterkit/internal/repository"
)

func TestCache_GetSet(t *testing.T) {
	c := NewCache()
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, c.Delete(ctx, "key"))

	_, err = c.Get(ctx, "key")
	require.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCache_TTL(t *testing.T) {
	c := NewCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), 10*time.Millisecond))

	_, err := c.Get(ctx, "short")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(ctx, "short")
	require.ErrorIs(t, err, repository.ErrCacheMiss)

	exists, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestCache_ValueIsolation(t *testing.T) {
	c := NewCache()
	defer c.Close()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, c.Set(ctx, "key", original, 0))

	// Mutating the stored slice must not affect the cached copy.
	original[0] = 'X'

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)

	// Nor must mutating a returned slice.
	got[0] = 'Y'
	got, err = c.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
