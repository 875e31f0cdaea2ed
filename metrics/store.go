package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/sagarc03/schedsync"
)

// Store decorates an ObjectStore with operation metrics.
type Store struct {
	next    schedsync.ObjectStore
	metrics *Metrics
}

// InstrumentStore wraps store so every call is counted and timed on m.
// A missing key on Get is recorded as "not_found", not as an error.
func InstrumentStore(store schedsync.ObjectStore, m *Metrics) *Store {
	return &Store{next: store, metrics: m}
}

// List counts and times the wrapped List.
func (s *Store) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := s.next.List(ctx)
	s.metrics.observeStore("list", 0, err, time.Since(start))
	return keys, err
}

// Put counts and times the wrapped Put, recording the body size.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	start := time.Now()
	err := s.next.Put(ctx, key, body, contentType)
	s.metrics.observeStore("put", len(body), err, time.Since(start))
	return err
}

// Get counts and times the wrapped Get.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	start := time.Now()
	obj, err := s.next.Get(ctx, key)
	if errors.Is(err, schedsync.ErrNotFound) {
		s.metrics.storeOps.WithLabelValues("get", "not_found").Inc()
		s.metrics.storeDur.WithLabelValues("get").Observe(time.Since(start).Seconds())
		return obj, err
	}
	s.metrics.observeStore("get", len(obj.Body), err, time.Since(start))
	return obj, err
}

// Ping forwards to the wrapped store when it implements schedsync.Pinger.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.next.(schedsync.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
