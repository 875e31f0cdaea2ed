package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/schedsync"

	_ "modernc.org/sqlite" // SQLite driver
)

// database provides SQLite database operations.
type database struct {
	db    *sql.DB
	table string
}

// Connect opens the SQLite database at dsn. The table name is validated but
// the table is not created; call Migrate for that.
func Connect(ctx context.Context, dsn, table string) (*database, error) {
	if err := schedsync.ValidateTableName(table); err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// single writer; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	return &database{
		db:    db,
		table: table,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate runs database migrations to create required tables.
func (d *database) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, d.db, d.table); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.db, d.table)
}

// GetStore returns the document store backed by this database.
func (d *database) GetStore() schedsync.ObjectStore {
	return &Store{db: d.db, tableName: quoteIdentifier(d.table)}
}

// Close closes the database connection.
func (d *database) Close() error {
	return d.db.Close()
}
