package contact

import (
	"context"
	"sync"
)

// InMemoryStore keeps submissions in process memory. It backs the server
// when no database is configured and the unit tests.
type InMemoryStore struct {
	mu          sync.RWMutex
	submissions []*Submission
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

var _ Store = (*InMemoryStore)(nil)

// Insert appends a copy of the submission.
func (s *InMemoryStore) Insert(_ context.Context, sub *Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sub
	s.submissions = append(s.submissions, &copied)
	return nil
}

// All returns a snapshot of stored submissions.
func (s *InMemoryStore) All() []*Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Submission{}, s.submissions...)
}
