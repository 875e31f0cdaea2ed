package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	body := []byte(`{"planning":{"tasks":[]}}`)
	require.NoError(t, store.Put(ctx, "tasks.json", body, schedsync.JSONContentType))

	obj, err := store.Get(ctx, "tasks.json")
	require.NoError(t, err)

	assert.Equal(t, "tasks.json", obj.Key)
	assert.Equal(t, body, obj.Body)
	assert.Equal(t, schedsync.JSONContentType, obj.ContentType)
	assert.Equal(t, int64(len(body)), obj.Size)
	assert.Equal(t, schedsync.ComputeETag(body), obj.ETag)
	assert.False(t, obj.UpdatedAt.IsZero())
}

func TestStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing.json")
	assert.ErrorIs(t, err, schedsync.ErrNotFound)
}

func TestStore_PutOverwrites(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "config.json", []byte(`{"v":1}`), schedsync.JSONContentType))
	require.NoError(t, store.Put(ctx, "config.json", []byte(`{"v":2}`), schedsync.JSONContentType))

	obj, err := store.Get(ctx, "config.json")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(obj.Body))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"config.json"}, keys)
}

func TestStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)

	for _, k := range []string{"tasks.json", "config.json", "daily_stats.json"} {
		require.NoError(t, store.Put(ctx, k, []byte("{}"), schedsync.JSONContentType))
	}

	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"config.json", "daily_stats.json", "tasks.json"}, keys)
}

func TestStore_ConcurrentPuts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, "timer_state.json", []byte(`{"running":true}`), schedsync.JSONContentType))
		}()
	}
	wg.Wait()

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"timer_state.json"}, keys)
}

func TestStore_Ping(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewStore_InvalidTableName(t *testing.T) {
	pool := getSharedTestDatabase(t)

	_, err := postgres.NewStore(pool, "Robert'); DROP TABLE students;--")
	assert.Error(t, err)
}
