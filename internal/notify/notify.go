// Package notify dispatches operator and subscriber notifications. The only
// implementation today logs instead of sending email; callers treat every
// Notifier as best-effort and ignore failures.
package notify

import (
	"context"
	"log/slog"
)

// ContactMessage is the notification payload for a new contact submission.
type ContactMessage struct {
	Name            string
	Email           string
	Company         string
	ServiceInterest string
}

// Welcome is the notification payload for a new or reactivated subscriber.
type Welcome struct {
	Email string
	Name  string
}

// Notifier sends notifications for processed form submissions.
type Notifier interface {
	ContactReceived(ctx context.Context, msg ContactMessage) error
	WelcomeSubscriber(ctx context.Context, welcome Welcome) error
}

// LogNotifier is the stand-in Notifier used until an email provider is
// integrated. It records the would-be notification and reports success.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ Notifier = (*LogNotifier)(nil)

// ContactReceived logs the submission that would be mailed to the team.
func (n *LogNotifier) ContactReceived(ctx context.Context, msg ContactMessage) error {
	n.logger.InfoContext(ctx, "new contact form submission",
		"name", msg.Name,
		"email", msg.Email,
		"company", msg.Company,
		"service_interest", msg.ServiceInterest,
	)
	return nil
}

// WelcomeSubscriber logs the welcome email that would be sent.
func (n *LogNotifier) WelcomeSubscriber(ctx context.Context, welcome Welcome) error {
	n.logger.InfoContext(ctx, "sending welcome email",
		"email", welcome.Email,
		"name", welcome.Name,
	)
	return nil
}
