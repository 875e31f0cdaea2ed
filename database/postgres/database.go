package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/schedsync"
)

type database struct {
	pool  *pgxpool.Pool
	table string
}

// Connect establishes a connection pool to PostgreSQL. The table name is
// validated but the table is not created; call Migrate for that.
func Connect(ctx context.Context, dsn, table string) (*database, error) {
	if err := schedsync.ValidateTableName(table); err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &database{
		pool:  pool,
		table: table,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Migrate runs database migrations to create required tables.
func (d *database) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, d.pool, d.table); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.pool, d.table)
}

// GetStore returns the document store backed by this database.
func (d *database) GetStore() schedsync.ObjectStore {
	return newStore(d.pool, d.table)
}

// Close closes the connection pool.
func (d *database) Close() error {
	d.pool.Close()
	return nil
}
