package newsletter

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps subscriptions in process memory. It serves two roles:
// the primary store when no database is configured, and the process-local
// fallback that subscribe falls into when the durable write fails.
type InMemoryStore struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{subscribers: make(map[string]*Subscriber)}
}

var _ Store = (*InMemoryStore)(nil)

// FindByEmail returns a copy of the record for email, or ErrNotFound.
func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscribers[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

// Insert creates a new record keyed by the subscriber's email. An existing
// record is overwritten; the service only inserts after FindByEmail missed.
func (s *InMemoryStore) Insert(_ context.Context, sub *Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sub
	s.subscribers[sub.Email] = &copied
	return nil
}

// Reactivate flips a record back to subscribed.
func (s *InMemoryStore) Reactivate(_ context.Context, email string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscribers[email]
	if !ok {
		return ErrNotFound
	}
	sub.Status = StatusSubscribed
	sub.UpdatedAt = now
	confirmed := now
	sub.ConfirmedAt = &confirmed
	return nil
}

// IsSubscribed reports whether email has an active subscription.
func (s *InMemoryStore) IsSubscribed(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscribers[email]
	return ok && sub.Status == StatusSubscribed, nil
}
