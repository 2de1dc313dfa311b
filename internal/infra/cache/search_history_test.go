package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/gemlabs/gem-platform/internal/entity"
)

func TestMemoryStoreNewestFirst(t *testing.T) {
	store := NewMemorySearchHistory()
	ctx := context.Background()

	assert.NoError(t, store.Append(ctx, "user-1", "tesla model 3"))
	assert.NoError(t, store.Append(ctx, "user-1", "beach house"))

	entries, err := store.Get(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "beach house", entries[0].Query)
	assert.Equal(t, "tesla model 3", entries[1].Query)
}

func TestMemoryStoreCapsHistory(t *testing.T) {
	store := NewMemorySearchHistory()
	ctx := context.Background()

	for i := 0; i < entity.MaxSearchHistory+5; i++ {
		assert.NoError(t, store.Append(ctx, "user-1", fmt.Sprintf("query %d", i)))
	}

	entries, err := store.Get(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, entity.MaxSearchHistory)
	assert.Equal(t, fmt.Sprintf("query %d", entity.MaxSearchHistory+4), entries[0].Query)
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	store := NewMemorySearchHistory()
	ctx := context.Background()

	assert.NoError(t, store.Append(ctx, "user-1", "tesla"))

	entries, err := store.Get(ctx, "user-2")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func newRedisStore(t *testing.T) *RedisSearchHistory {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSearchHistory(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Append(ctx, "user-1", "tesla model 3"))
	assert.NoError(t, store.Append(ctx, "user-1", "beach house"))

	entries, err := store.Get(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "beach house", entries[0].Query)
}

func TestRedisStoreTrimsToCap(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	for i := 0; i < entity.MaxSearchHistory+10; i++ {
		assert.NoError(t, store.Append(ctx, "user-1", fmt.Sprintf("query %d", i)))
	}

	entries, err := store.Get(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, entity.MaxSearchHistory)
}
