package redis_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testAddr    string
	testErr     error
	testOnce    sync.Once
	testCleanup func()
)

func TestMain(m *testing.M) {
	code := m.Run()
	if testCleanup != nil {
		testCleanup()
	}
	os.Exit(code)
}

// getRedisAddr starts one redis container shared by every test in the package.
func getRedisAddr(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	testOnce.Do(func() {
		ctx := context.Background()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections"),
			},
			Started: true,
		})
		if err != nil {
			testErr = fmt.Errorf("start redis container: %w", err)
			return
		}

		testCleanup = func() {
			_ = testcontainers.TerminateContainer(container)
		}

		testAddr, testErr = container.PortEndpoint(ctx, "6379/tcp", "")
	})

	require.NoError(t, testErr)
	return testAddr
}

func setupTestStore(t *testing.T) *redis.Store {
	t.Helper()
	ctx := context.Background()

	cfg := redis.Config{Addr: getRedisAddr(t), Prefix: "test:" + t.Name() + ":"}
	store, err := redis.Open(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStore_PutGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	body := []byte(`{"planning":{"tasks":[{"text":"write","completed":false}]}}`)
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

func TestStore_Overwrite(t *testing.T) {
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

	for _, k := range []string{"tasks.json", "config.json"} {
		require.NoError(t, store.Put(ctx, k, []byte("{}"), schedsync.JSONContentType))
	}

	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"config.json", "tasks.json"}, keys)
}

func TestStore_PrefixIsolation(t *testing.T) {
	addr := getRedisAddr(t)
	ctx := context.Background()

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	a := redis.New(client, "iso-a:")
	b := redis.New(client, "iso-b:")

	require.NoError(t, a.Put(ctx, "tasks.json", []byte("{}"), schedsync.JSONContentType))

	_, err := b.Get(ctx, "tasks.json")
	assert.ErrorIs(t, err, schedsync.ErrNotFound)

	keys, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_Ping(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := redis.Open(context.Background(), redis.Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
