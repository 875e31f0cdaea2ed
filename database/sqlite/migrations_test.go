package sqlite_test

import (
	"context"
	"testing"

	"github.com/sagarc03/schedsync/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Run("creates table that validates", func(t *testing.T) {
		db := getTestDatabase(t)
		ctx := context.Background()

		require.NoError(t, sqlite.Migrate(ctx, db, "documents"))
		assert.NoError(t, sqlite.ValidateSchema(ctx, db, "documents"))
	})

	t.Run("idempotent", func(t *testing.T) {
		db := getTestDatabase(t)
		ctx := context.Background()

		require.NoError(t, sqlite.Migrate(ctx, db, "documents"))
		assert.NoError(t, sqlite.Migrate(ctx, db, "documents"))
	})
}

func TestDropTables(t *testing.T) {
	db := getTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, sqlite.Migrate(ctx, db, "documents"))
	require.NoError(t, sqlite.DropTables(ctx, db, "documents"))

	err := sqlite.ValidateSchema(ctx, db, "documents")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateSchema(t *testing.T) {
	t.Run("error - table does not exist", func(t *testing.T) {
		db := getTestDatabase(t)

		err := sqlite.ValidateSchema(context.Background(), db, "nonexistent_table")
		assert.Error(t, err)
	})

	t.Run("error - invalid table name", func(t *testing.T) {
		db := getTestDatabase(t)

		err := sqlite.ValidateSchema(context.Background(), db, "drop table;")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid table name")
	})

	t.Run("error - table has incomplete schema", func(t *testing.T) {
		db := getTestDatabase(t)
		ctx := context.Background()

		_, err := db.ExecContext(ctx, `
			CREATE TABLE incomplete_documents (
				path TEXT NOT NULL PRIMARY KEY,
				body BLOB
			)
		`)
		require.NoError(t, err)

		err = sqlite.ValidateSchema(ctx, db, "incomplete_documents")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing columns")
		assert.Contains(t, err.Error(), "nullable")
	})
}
