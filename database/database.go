package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/database/postgres"
	"github.com/sagarc03/schedsync/database/sqlite"
)

// DefaultTable is the document table used when none is configured.
const DefaultTable = "schedsync_documents"

// Config holds the configuration for connecting to a document database.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string
	// DSN is the data source name (connection string)
	DSN string
	// Table is the name of the documents table
	Table string
}

// Database is an open document database.
type Database interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Validate(ctx context.Context) error
	GetStore() schedsync.ObjectStore
	Close() error
}

// Connect opens the configured database. It neither migrates nor validates;
// see Open for the full startup sequence.
func Connect(ctx context.Context, cfg Config) (Database, error) {
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	switch cfg.Type {
	case "sqlite":
		db, err := sqlite.Connect(ctx, cfg.DSN, table)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.DSN, table)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// Open connects, pings, optionally migrates, then validates the schema.
// The returned cleanup function closes the connection.
func Open(ctx context.Context, cfg Config, migrate bool) (schedsync.ObjectStore, func(), error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	fail := func(step string, err error) (schedsync.ObjectStore, func(), error) {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%s %s: %w", step, cfg.Type, err)
	}

	if err = db.Ping(ctx); err != nil {
		return fail("ping", err)
	}

	if migrate {
		if err = db.Migrate(ctx); err != nil {
			return fail("migrate", err)
		}
	}

	if err = db.Validate(ctx); err != nil {
		return fail("validate", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return db.GetStore(), cleanup, nil
}
