package ratelimit

import (
	"context"
	"sync"
	"time"

	"webforms/pkg/requestcontext"
)

// InMemoryStore implements Store with a mutex-guarded map of fixed windows.
// Entries for a key are replaced when their window lapses but are never
// swept globally, so the map grows with the number of distinct sources seen
// by this process. Use RedisStore when limits must hold across instances.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

// window is one fixed-window counter.
type window struct {
	count   int
	resetAt time.Time
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{windows: make(map[string]*window)}
}

// Allow consumes one attempt for key. The check-then-increment sequence runs
// under the mutex so concurrent requests from the same source cannot exceed
// the limit.
func (s *InMemoryStore) Allow(ctx context.Context, key string, limit int, windowDur time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := requestcontext.Now(ctx)

	w := s.windows[key]
	if w == nil || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(windowDur)}
		s.windows[key] = w
		return &Result{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: w.resetAt}, nil
	}

	if w.count >= limit {
		// Rejection does not mutate the window.
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: w.resetAt}, nil
	}

	w.count++
	return &Result{Allowed: true, Limit: limit, Remaining: limit - w.count, ResetAt: w.resetAt}, nil
}

// Reset clears the window for a key.
func (s *InMemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// Count returns the live counter for a key, for tests and diagnostics.
func (s *InMemoryStore) Count(ctx context.Context, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.windows[key]
	if w == nil || requestcontext.Now(ctx).After(w.resetAt) {
		return 0
	}
	return w.count
}
