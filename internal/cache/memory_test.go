package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryStore_InvalidConfig(t *testing.T) {
	_, err := NewMemoryStore(0, time.Second)
	assert.Error(t, err)

	_, err = NewMemoryStore(10, 0)
	assert.Error(t, err)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store, err := NewMemoryStore(100, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "problem_7", cachedEntity{ID: "7", Title: "why"}, time.Minute))

	var got cachedEntity
	found, err := store.Get(ctx, "problem_7", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, cachedEntity{ID: "7", Title: "why"}, got)

	require.NoError(t, store.Delete(ctx, "problem_7"))
	found, err = store.Get(ctx, "problem_7", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNopStore_AlwaysMisses(t *testing.T) {
	store := NewNopStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "article_1", cachedEntity{ID: "1"}, time.Minute))

	var got cachedEntity
	found, err := store.Get(ctx, "article_1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
