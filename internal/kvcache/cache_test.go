package kvcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok, err := c.Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, KeyTheme, "dark"))
	v, ok, err := c.Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)

	require.NoError(t, c.Remove(ctx, KeyTheme))
	require.NoError(t, c.Remove(ctx, KeyTheme))
	require.Equal(t, 0, c.Len())
}
