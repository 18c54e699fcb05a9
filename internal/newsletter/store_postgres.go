package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists subscriptions in the newsletter_subscribers table.
// A unique index on the email column enforces the one-record-per-email
// invariant at the store level.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// FindByEmail returns the record for a normalized email, or ErrNotFound.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Subscriber, error) {
	var sub Subscriber
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, COALESCE(name, ''), COALESCE(interests, '{}'),
		        ip_address, source, status, created_at, updated_at, confirmed_at
		 FROM newsletter_subscribers
		 WHERE email = $1`,
		email,
	).Scan(&sub.ID, &sub.Email, &sub.Name, &sub.Interests, &sub.IPAddress,
		&sub.Source, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt, &sub.ConfirmedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	return &sub, nil
}

// Insert creates a new subscription row.
func (s *PostgresStore) Insert(ctx context.Context, sub *Subscriber) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO newsletter_subscribers
		   (id, email, name, interests, ip_address, source, status,
		    created_at, updated_at, confirmed_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`,
		sub.ID, sub.Email, sub.Name, sub.Interests, sub.IPAddress, sub.Source,
		sub.Status, sub.CreatedAt, sub.UpdatedAt, sub.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// Reactivate flips an existing row back to subscribed.
func (s *PostgresStore) Reactivate(ctx context.Context, email string, now time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE newsletter_subscribers
		 SET status = $2, updated_at = $3, confirmed_at = $3
		 WHERE email = $1`,
		email, StatusSubscribed, now,
	)
	if err != nil {
		return fmt.Errorf("reactivate subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsSubscribed reports whether a normalized email has an active
// subscription.
func (s *PostgresStore) IsSubscribed(ctx context.Context, email string) (bool, error) {
	var subscribed bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM newsletter_subscribers
		   WHERE email = $1 AND status = $2
		 )`,
		email, StatusSubscribed,
	).Scan(&subscribed)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return subscribed, nil
}
