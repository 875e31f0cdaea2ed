package sqlite_test

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/sagarc03/schedsync/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	assert.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

// getTestDatabase opens a private in-memory database.
func getTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "failed to open sqlite database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// setupTestStore creates a migrated store with a unique table name for test isolation.
func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()

	db := getTestDatabase(t)
	tableName := fmt.Sprintf("documents_%s", getRandomString(t))

	require.NoError(t, sqlite.Migrate(ctx, db, tableName), "failed to migrate")

	store, err := sqlite.NewStore(db, tableName)
	require.NoError(t, err, "failed to create store")

	return store
}
