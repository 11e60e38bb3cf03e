package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreMissingSessionIsEmptyCart(t *testing.T) {
	s := NewMemoryStore()

	c, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	c := &Cart{}
	require.NoError(t, c.Add(line(1, 100, 2)))
	require.NoError(t, s.Save(ctx, "s1", c))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(200), got.Total())
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	c1 := &Cart{}
	require.NoError(t, c1.Add(line(1, 100, 1)))
	require.NoError(t, s.Save(ctx, "s1", c1))

	c2, err := s.Get(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, c2.Empty())
}

func TestMemoryStoreCopiesOnGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	c := &Cart{}
	require.NoError(t, c.Add(line(1, 100, 2)))
	require.NoError(t, s.Save(ctx, "s1", c))

	// Mutating a fetched cart must not leak into the store until Save.
	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, got.UpdateQuantity(0, 99))

	again, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lines[0].Quantity)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	c := &Cart{}
	require.NoError(t, c.Add(line(1, 100, 2)))
	require.NoError(t, s.Save(ctx, "s1", c))
	require.NoError(t, s.Delete(ctx, "s1"))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}
