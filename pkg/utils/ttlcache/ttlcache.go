package ttlcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is a string-keyed cache whose entries expire after a fixed TTL.
// Entries are refreshed in place on read and never evicted; the key space
// grows only with the query vocabulary, so no eviction is needed.
//
// A stale entry stays in the map until a refresh succeeds. A failed
// refresh returns the error to the caller and stores nothing.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
}

type entry[V any] struct {
	value       V
	refreshedAt time.Time
}

type config struct {
	now func() time.Time
}

// Option configures a Store
type Option func(*config)

// WithClock replaces the time source, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New creates a Store whose entries stay fresh for ttl
func New[V any](ttl time.Duration, opts ...Option) *Store[V] {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     cfg.now,
	}
}

// GetOrRefresh returns the cached value for key while it is fresh.
// Otherwise it invokes refresh, stores the result with the current time
// and returns it. Concurrent callers hitting the same stale key share a
// single refresh call.
func (s *Store[V]) GetOrRefresh(ctx context.Context, key string, refresh func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// A racing caller may have refreshed the key while this one was
		// waiting on the flight group.
		if v, ok := s.lookup(key); ok {
			return v, nil
		}

		v, err := refresh(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = entry[V]{value: v, refreshedAt: s.now()}
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (s *Store[V]) lookup(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || !s.fresh(e.refreshedAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// fresh is a pure function of the refresh timestamp and the clock
func (s *Store[V]) fresh(refreshedAt time.Time) bool {
	return s.now().Sub(refreshedAt) <= s.ttl
}

// Peek returns the stored value for key regardless of freshness
func (s *Store[V]) Peek(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e.value, ok
}

// Len returns the number of stored entries, fresh or stale
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
