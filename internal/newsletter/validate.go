package newsletter

import (
	"regexp"
	"strings"

	"webforms/pkg/apperrors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// disposableDomains is the fixed denylist of throwaway-email providers.
// Matched exactly (case-insensitive) against the domain part.
var disposableDomains = map[string]bool{
	"10minutemail.com":  true,
	"tempmail.org":      true,
	"guerrillamail.com": true,
	"mailinator.com":    true,
	"temp-mail.org":     true,
}

// ParseSubscription validates and normalizes a raw request into a
// Subscriber. The first violated rule aborts with a VALIDATION_ERROR.
func ParseSubscription(req SubscribeRequest) (*Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid email format")
	}

	if domain := email[strings.IndexByte(email, '@')+1:]; disposableDomains[domain] {
		return nil, apperrors.New(apperrors.CodeValidation, "Disposable email addresses are not allowed")
	}

	name := strings.TrimSpace(req.Name)
	if req.Name != "" && len([]rune(name)) < 2 {
		return nil, apperrors.New(apperrors.CodeValidation, "Name must be at least 2 characters if provided")
	}

	var interests []string
	for _, interest := range req.Interests {
		if trimmed := strings.TrimSpace(interest); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = DefaultSource
	}

	return &Subscriber{
		Email:     email,
		Name:      name,
		Interests: interests,
		Source:    source,
		Status:    StatusSubscribed,
	}, nil
}

// NormalizeEmail applies the canonical email normalization used across the
// package: trim then lowercase. Idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
