// Package postgres implements schedsync.ObjectStore on a PostgreSQL table using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/schedsync"
)

// Store keeps each document as one row, body included.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewStore returns a Store over an already migrated table.
func NewStore(pool *pgxpool.Pool, table string) (*Store, error) {
	if err := schedsync.ValidateTableName(table); err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}

	return newStore(pool, table), nil
}

func newStore(pool *pgxpool.Pool, table string) *Store {
	return &Store{pool: pool, tableName: pgx.Identifier{table}.Sanitize()}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// List returns every stored path in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT path FROM %s ORDER BY path`, s.tableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	if keys == nil {
		keys = []string{}
	}

	return keys, nil
}

// Put upserts the row for key.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (path, content_type, body, size_bytes, etag)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (path) DO UPDATE
		SET content_type = EXCLUDED.content_type,
			body = EXCLUDED.body,
			size_bytes = EXCLUDED.size_bytes,
			etag = EXCLUDED.etag,
			updated_at = NOW()
	`, s.tableName)

	if body == nil {
		body = []byte{}
	}

	_, err := s.pool.Exec(ctx, query, key, contentType, body, int64(len(body)), schedsync.ComputeETag(body))
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}

	return nil
}

// Get loads the row for key, or returns schedsync.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	query := fmt.Sprintf(`
		SELECT path, content_type, body, size_bytes, etag, updated_at
		FROM %s
		WHERE path = $1
	`, s.tableName)

	var obj schedsync.Object
	err := s.pool.QueryRow(ctx, query, key).Scan(
		&obj.Key, &obj.ContentType, &obj.Body, &obj.Size, &obj.ETag, &obj.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedsync.Object{}, schedsync.ErrNotFound
		}
		return schedsync.Object{}, fmt.Errorf("get: %w", err)
	}

	return obj, nil
}
