package contact

import (
	"regexp"
	"strings"

	"webforms/pkg/apperrors"
)

var (
	// Deliberately permissive: one local part, one domain with a dot, no
	// whitespace. Full RFC 5322 parsing buys nothing for a contact form.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Digits plus common punctuation; an optional leading +.
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// ParseSubmission validates and normalizes a raw request into a Submission.
// The first violated rule aborts with a VALIDATION_ERROR carrying a
// human-readable message; there is no error aggregation.
func ParseSubmission(req SubmitRequest) (*Submission, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		return nil, apperrors.New(apperrors.CodeValidation, "Name is required and must be at least 2 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid email format")
	}

	message := strings.TrimSpace(req.Message)
	if len([]rune(message)) < 10 {
		return nil, apperrors.New(apperrors.CodeValidation, "Message is required and must be at least 10 characters")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid phone number format")
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = DefaultSource
	}

	return &Submission{
		Name:            name,
		Email:           email,
		Phone:           phone,
		Company:         strings.TrimSpace(req.Company),
		ServiceInterest: strings.TrimSpace(req.Service),
		Message:         message,
		Source:          source,
		Status:          StatusNew,
	}, nil
}
