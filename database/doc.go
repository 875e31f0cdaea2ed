// Package database connects the gateway to a SQL document table.
//
// Each document is one row keyed by its filename, holding the body, content
// type, size, etag and timestamps.
//
// # Supported Backends
//
//   - PostgreSQL: pgx connection pool, body stored as BYTEA
//   - SQLite: modernc.org/sqlite (pure Go), body stored as BLOB
//
// # Usage
//
//	cfg := database.Config{
//	    Type:  "sqlite",
//	    DSN:   "schedsync.db",
//	    Table: "schedsync_documents",
//	}
//
//	store, cleanup, err := database.Open(ctx, cfg, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
//
// Open runs the full startup sequence:
//   - Opens the database connection
//   - Pings it
//   - Runs schema migrations when asked
//   - Validates the schema
//   - Returns a ready-to-use schedsync.ObjectStore
//
// Connect only opens the connection and returns a Database, for callers such
// as the migrate command that drive each step themselves.
//
// # Subpackages
//
//   - database/postgres: PostgreSQL implementation using pgx
//   - database/sqlite: SQLite implementation using modernc.org/sqlite
package database
