// Package memory provides an in-process ObjectStore backed by a map.
// Suitable for tests and for running the gateway without durable storage.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sagarc03/schedsync"
)

// Store keeps documents in memory. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects map[string]schedsync.Object
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{objects: make(map[string]schedsync.Object)}
}

// List returns all keys in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys, nil
}

// Put stores a copy of body under key.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	obj := schedsync.Object{
		Key:         key,
		Body:        slices.Clone(body),
		ContentType: contentType,
		Size:        int64(len(body)),
		ETag:        schedsync.ComputeETag(body),
		UpdatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.objects[key] = obj
	s.mu.Unlock()

	return nil
}

// Get returns a copy of the object under key, or schedsync.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	if err := ctx.Err(); err != nil {
		return schedsync.Object{}, err
	}

	s.mu.RLock()
	obj, found := s.objects[key]
	s.mu.RUnlock()

	if !found {
		return schedsync.Object{}, schedsync.ErrNotFound
	}

	obj.Body = slices.Clone(obj.Body)
	return obj, nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
