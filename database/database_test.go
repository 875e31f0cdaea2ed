package database_test

import (
	"context"
	"testing"

	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func newTestConfig(tableName string) database.Config {
	return database.Config{
		Type:  "sqlite",
		DSN:   ":memory:",
		Table: tableName,
	}
}

func setupTestDB(t *testing.T, tableName string) database.Database {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(ctx, newTestConfig(tableName))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func setupTestDBWithMigration(t *testing.T, tableName string) database.Database {
	t.Helper()
	ctx := context.Background()

	db := setupTestDB(t, tableName)

	err := db.Migrate(ctx)
	require.NoError(t, err)

	return db
}

// Tests for Connect routing logic

func TestConnect_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDB(t, "test_documents")

	err := db.Ping(ctx)
	assert.NoError(t, err)
}

func TestConnect_DefaultTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBWithMigration(t, "")

	assert.NoError(t, db.Validate(ctx))
}

func TestConnect_InvalidType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := database.Config{Type: "invalid", DSN: "whatever", Table: "test_documents"}

	_, err := database.Connect(ctx, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestConnect_EmptyType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := database.Config{Type: "", DSN: ":memory:", Table: "test_documents"}

	_, err := database.Connect(ctx, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestConnect_InvalidTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := database.Connect(ctx, newTestConfig("Documents; DROP"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")
}

// Tests for Database interface methods

func TestDatabase_Migrate_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDB(t, "migrate_idem_test")

	err := db.Migrate(ctx)
	require.NoError(t, err)

	err = db.Migrate(ctx)
	assert.NoError(t, err, "migrate should be idempotent")
}

func TestDatabase_Validate_BeforeMigration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDB(t, "validate_before_test")

	err := db.Validate(ctx)
	assert.Error(t, err, "validate should fail without tables")
}

func TestDatabase_Validate_AfterMigration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBWithMigration(t, "validate_after_test")

	err := db.Validate(ctx)
	assert.NoError(t, err, "validate should pass after migration")
}

func TestDatabase_GetStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBWithMigration(t, "getstore_test")

	store := db.GetStore()
	require.NotNil(t, store)

	require.NoError(t, store.Put(ctx, "daily_stats.json", []byte(`{"days":[]}`), schedsync.JSONContentType))

	obj, err := store.Get(ctx, "daily_stats.json")
	require.NoError(t, err)
	assert.Equal(t, `{"days":[]}`, string(obj.Body))
}

func TestDatabase_Close(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.Connect(ctx, newTestConfig("close_test"))
	require.NoError(t, err)

	err = db.Close()
	assert.NoError(t, err)

	err = db.Ping(ctx)
	assert.Error(t, err, "ping should fail after close")
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("migrates and returns a working store", func(t *testing.T) {
		store, cleanup, err := database.Open(ctx, newTestConfig("open_test"), true)
		require.NoError(t, err)
		defer cleanup()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("fails validation without migrate", func(t *testing.T) {
		_, _, err := database.Open(ctx, newTestConfig("open_nomigrate_test"), false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validate sqlite")
	})
}

// Note: Postgres-specific tests are in database/postgres package.
