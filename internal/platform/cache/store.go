// Package cache backs the read side of the site: standings, scorer
// boards, and per-match event views are expensive to derive, so they are
// held here until a submission invalidates them.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chaeyoungson/goalgirls/internal/platform/resilience"
)

type record struct {
	payload any
	expiry  time.Time
}

func (r record) expired(now time.Time) bool {
	return !r.expiry.IsZero() && !r.expiry.After(now)
}

// Store is a TTL cache with single-flight-protected loading. A zero TTL
// disables expiry, which the tests rely on.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	ttl     time.Duration
	flight  resilience.SingleFlight
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		records: make(map[string]record),
		ttl:     ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if rec.expired(time.Now()) {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return nil, false
	}

	return rec.payload, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	rec := record{payload: value}
	if s.ttl > 0 {
		rec.expiry = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.records[key] = rec
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key under a namespace; the invalidator uses it
// to clear all of one match's views and the derived stats in one call.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			delete(s.records, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or runs loader exactly once for
// concurrent callers of the same key. A standings recompute right after
// an invalidation would otherwise stampede the store.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A follower that lost the race re-checks before loading.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
