// Package redis stores documents in Redis. Each document is a hash holding
// the body and its metadata; a set indexes the stored keys for listing.
package redis

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sagarc03/schedsync"
)

const (
	fieldBody        = "body"
	fieldContentType = "content_type"
	fieldETag        = "etag"
	fieldUpdatedAt   = "updated_at"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	Prefix   string `mapstructure:"prefix"`
}

// Store provides document operations on a Redis client.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Store using keys under prefix.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Open dials Redis with cfg and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	return New(client, cfg.Prefix), nil
}

func (s *Store) docKey(key string) string {
	return s.prefix + "doc:" + key
}

func (s *Store) indexKey() string {
	return s.prefix + "keys"
}

// List returns the indexed keys in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}

	if keys == nil {
		keys = []string{}
	}
	slices.Sort(keys)

	return keys, nil
}

// Put writes the document hash and indexes its key in one MULTI/EXEC.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docKey(key),
			fieldBody, body,
			fieldContentType, contentType,
			fieldETag, schedsync.ComputeETag(body),
			fieldUpdatedAt, now,
		)
		pipe.SAdd(ctx, s.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put %s: %w", key, err)
	}

	return nil
}

// Get reads the document hash under key, or returns schedsync.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	fields, err := s.client.HGetAll(ctx, s.docKey(key)).Result()
	if err != nil {
		return schedsync.Object{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	body, ok := fields[fieldBody]
	if !ok {
		return schedsync.Object{}, schedsync.ErrNotFound
	}

	obj := schedsync.Object{
		Key:         key,
		Body:        []byte(body),
		ContentType: fields[fieldContentType],
		Size:        int64(len(body)),
		ETag:        fields[fieldETag],
	}

	if ts := fields[fieldUpdatedAt]; ts != "" {
		obj.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return schedsync.Object{}, fmt.Errorf("redis get %s: parse updated_at: %w", key, err)
		}
	}

	return obj, nil
}

// Ping checks if the Redis connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
