package newsletter

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by FindByEmail when no record exists for the
// normalized email.
var ErrNotFound = errors.New("subscriber not found")

// Store persists newsletter subscriptions keyed by normalized email.
type Store interface {
	// FindByEmail returns the record for a normalized email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)

	// Insert creates a new subscription record.
	Insert(ctx context.Context, sub *Subscriber) error

	// Reactivate flips an existing record back to subscribed and stamps
	// updated_at and confirmed_at with now.
	Reactivate(ctx context.Context, email string, now time.Time) error

	// IsSubscribed reports whether a normalized email has an active
	// subscription.
	IsSubscribed(ctx context.Context, email string) (bool, error)
}
