package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"webforms/internal/notify"
	"webforms/internal/platform/metrics"
	"webforms/pkg/requestcontext"
)

// Service orchestrates the contact pipeline: validate, spam-score, persist,
// notify. Everything after validation is best-effort — a storage or
// notification outage must not surface to the visitor filling in the form.
type Service struct {
	store    Store
	notifier notify.Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a contact Service. All dependencies are required.
func NewService(store Store, notifier notify.Notifier, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("contact store is required")
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
	return &Service{store: store, notifier: notifier, logger: logger, metrics: m}, nil
}

// Submit processes one contact-form submission. It returns a validation
// error for malformed input; every downstream failure is logged, counted
// and swallowed, so a returned Submission means the caller should report
// success even if the write never landed.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	sub, err := ParseSubmission(req)
	if err != nil {
		s.metrics.RecordSubmission("contact", "invalid")
		return nil, err
	}

	sub.ID = uuid.NewString()
	sub.CreatedAt = requestcontext.Now(ctx)
	sub.IPAddress = requestcontext.ClientIP(ctx)
	sub.UserAgent = requestcontext.UserAgent(ctx)

	// Advisory only: flagged submissions are logged for manual review and
	// processed like any other.
	if flags := SpamFlags(sub.Message); len(flags) > 0 {
		s.metrics.RecordSpamFlag()
		s.logger.WarnContext(ctx, "potential spam submission",
			"ip", sub.IPAddress,
			"email", sub.Email,
			"flags", flags,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	if err := s.store.Insert(ctx, sub); err != nil {
		s.metrics.RecordPersistFailure("contact")
		s.logger.ErrorContext(ctx, "failed to persist contact submission",
			"error", err,
			"email", sub.Email,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	if err := s.notifier.ContactReceived(ctx, notify.ContactMessage{
		Name:            sub.Name,
		Email:           sub.Email,
		Company:         sub.Company,
		ServiceInterest: sub.ServiceInterest,
	}); err != nil {
		s.logger.ErrorContext(ctx, "contact notification failed",
			"error", err,
			"email", sub.Email,
		)
	}

	s.metrics.RecordSubmission("contact", "accepted")
	return sub, nil
}
