package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists submissions in the contact_submissions table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// Insert writes one submission row. Empty optional fields are stored as
// NULL so downstream review tooling can distinguish "not provided".
func (s *PostgresStore) Insert(ctx context.Context, sub *Submission) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_submissions
		   (id, name, email, phone, company, service_interest, message,
		    ip_address, user_agent, source, status, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7,
		         $8, NULLIF($9, ''), $10, $11, $12)`,
		sub.ID, sub.Name, sub.Email, sub.Phone, sub.Company, sub.ServiceInterest,
		sub.Message, sub.IPAddress, sub.UserAgent, sub.Source, sub.Status, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}
