// Package sqlite implements schedsync.ObjectStore on a SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sagarc03/schedsync"
)

// Store keeps each document as one row, body included.
type Store struct {
	db        *sql.DB
	tableName string
}

// NewStore returns a Store over an already migrated table.
func NewStore(db *sql.DB, table string) (*Store, error) {
	if err := schedsync.ValidateTableName(table); err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}

	return &Store{db: db, tableName: quoteIdentifier(table)}, nil
}

// List returns every stored path in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT path FROM %s ORDER BY path`, s.tableName) //nolint:gosec // G201: table name is validated

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: rows: %w", err)
	}

	return keys, nil
}

// Put upserts the row for key.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (path, content_type, body, size_bytes, etag, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE
		SET content_type = excluded.content_type,
			body = excluded.body,
			size_bytes = excluded.size_bytes,
			etag = excluded.etag,
			updated_at = excluded.updated_at`, s.tableName)

	if body == nil {
		body = []byte{}
	}

	_, err := s.db.ExecContext(ctx, query,
		key, contentType, body, len(body), schedsync.ComputeETag(body), now, now,
	)
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}

	return nil
}

// Get loads the row for key, or returns schedsync.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT path, content_type, body, size_bytes, etag, updated_at
		FROM %s
		WHERE path = ?`, s.tableName)

	var obj schedsync.Object
	var updatedAt string

	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&obj.Key, &obj.ContentType, &obj.Body, &obj.Size, &obj.ETag, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedsync.Object{}, schedsync.ErrNotFound
		}
		return schedsync.Object{}, fmt.Errorf("get: %w", err)
	}

	obj.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return schedsync.Object{}, fmt.Errorf("get: parse updated_at: %w", err)
	}

	return obj, nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
