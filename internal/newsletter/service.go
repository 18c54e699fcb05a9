package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"webforms/internal/notify"
	"webforms/internal/platform/metrics"
	"webforms/pkg/requestcontext"
)

// Result is the outcome of a subscribe call. Timestamp is nil for the
// idempotent already-subscribed branch.
type Result struct {
	Email     string
	Outcome   Outcome
	Timestamp *time.Time
}

// Service orchestrates the subscription pipeline. The store is the durable
// backend; fallback is the process-local set that catches records when the
// durable write fails, trading durability for a responsive success reply.
// In memory-only deployments store and fallback may be the same instance.
type Service struct {
	store    Store
	fallback *InMemoryStore
	notifier notify.Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a newsletter Service. All dependencies are required.
func NewService(store Store, fallback *InMemoryStore, notifier notify.Notifier, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("newsletter store is required")
	}
	if fallback == nil {
		return nil, fmt.Errorf("fallback store is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if m == nil {
		return nil, fmt.Errorf("metrics are required")
	}
	return &Service{store: store, fallback: fallback, notifier: notifier, logger: logger, metrics: m}, nil
}

// Subscribe processes one subscription request. At most one record exists
// per normalized email: an active subscription short-circuits, an inactive
// one is reactivated, anything else creates a record. Persistence failures
// after validation are logged, counted and absorbed by the fallback set.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*Result, error) {
	sub, err := ParseSubscription(req)
	if err != nil {
		s.metrics.RecordSubmission("newsletter", "invalid")
		return nil, err
	}

	now := requestcontext.Now(ctx)

	existing, err := s.store.FindByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		if existing.Status == StatusSubscribed {
			s.metrics.RecordSubmission("newsletter", string(OutcomeAlreadySubscribed))
			return &Result{Email: sub.Email, Outcome: OutcomeAlreadySubscribed}, nil
		}
		return s.reactivate(ctx, sub, now), nil
	case errors.Is(err, ErrNotFound):
		// First subscription for this email.
	default:
		// Durable store unreachable; keep going so the fallback can catch
		// the record.
		s.logger.ErrorContext(ctx, "subscriber lookup failed",
			"error", err,
			"email", sub.Email,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	sub.ID = uuid.NewString()
	sub.IPAddress = requestcontext.ClientIP(ctx)
	sub.CreatedAt = now
	sub.UpdatedAt = now
	confirmed := now
	sub.ConfirmedAt = &confirmed

	if err := s.store.Insert(ctx, sub); err != nil {
		s.metrics.RecordPersistFailure("newsletter")
		s.logger.ErrorContext(ctx, "failed to persist subscription, stored locally as fallback",
			"error", err,
			"email", sub.Email,
			"request_id", requestcontext.RequestID(ctx),
		)
		_ = s.fallback.Insert(ctx, sub)
	}

	if err := s.notifier.WelcomeSubscriber(ctx, notify.Welcome{Email: sub.Email, Name: sub.Name}); err != nil {
		s.logger.ErrorContext(ctx, "welcome notification failed",
			"error", err,
			"email", sub.Email,
		)
	}

	s.metrics.RecordSubmission("newsletter", string(OutcomeSubscribed))
	return &Result{Email: sub.Email, Outcome: OutcomeSubscribed, Timestamp: &now}, nil
}

// reactivate flips an inactive record back to subscribed. A failed durable
// update still reports success; the fallback set records the active state
// so the status endpoint stays coherent within this process.
func (s *Service) reactivate(ctx context.Context, sub *Subscriber, now time.Time) *Result {
	if err := s.store.Reactivate(ctx, sub.Email, now); err != nil {
		s.metrics.RecordPersistFailure("newsletter")
		s.logger.ErrorContext(ctx, "failed to reactivate subscription, stored locally as fallback",
			"error", err,
			"email", sub.Email,
			"request_id", requestcontext.RequestID(ctx),
		)
		reactivated := *sub
		reactivated.Status = StatusSubscribed
		reactivated.UpdatedAt = now
		confirmed := now
		reactivated.ConfirmedAt = &confirmed
		_ = s.fallback.Insert(ctx, &reactivated)
	}

	s.metrics.RecordSubmission("newsletter", string(OutcomeReactivated))
	return &Result{Email: sub.Email, Outcome: OutcomeReactivated, Timestamp: &now}
}

// IsSubscribed reports whether a (raw) email has an active subscription.
// The durable store is consulted first; the process-local fallback answers
// only when the durable lookup fails.
func (s *Service) IsSubscribed(ctx context.Context, email string) bool {
	normalized := NormalizeEmail(email)

	subscribed, err := s.store.IsSubscribed(ctx, normalized)
	if err != nil {
		s.logger.ErrorContext(ctx, "subscription status lookup failed, using fallback",
			"error", err,
			"email", normalized,
		)
		subscribed, _ = s.fallback.IsSubscribed(ctx, normalized)
		return subscribed
	}
	if subscribed {
		return true
	}

	// A record caught by the fallback after a failed durable write is still
	// an active subscription from this process's point of view.
	fallbackSubscribed, _ := s.fallback.IsSubscribed(ctx, normalized)
	return fallbackSubscribed
}
