package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v1"))
	require.NoError(t, m.Set(ctx, "k", "v2"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 3, m.Used())

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	assert.Equal(t, 0, m.Used())
}

func TestMemory_Quota(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	require.NoError(t, m.Set(ctx, "a", "12345"))
	err := m.Set(ctx, "b", "123456")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// overwriting frees the old value first
	require.NoError(t, m.Set(ctx, "a", "123456789"))
	v, _, _ := m.Get(ctx, "a")
	assert.Equal(t, "123456789", v)
	_, ok, _ := m.Get(ctx, "b")
	assert.False(t, ok)
}
