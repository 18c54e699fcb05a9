// Package contact implements the contact-form submission pipeline:
// validation, spam scoring, best-effort persistence and notification.
package contact

import "time"

// Status a submission carries on creation. Submissions are immutable from
// this service's perspective; review tooling downstream moves them on.
const StatusNew = "new"

// DefaultSource tags submissions that don't declare where they came from.
const DefaultSource = "website"

// SubmitRequest is the raw JSON body of POST /contact.
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// Submission is a validated, normalized contact-form submission.
// Optional fields are empty strings when not provided.
type Submission struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Company         string    `json:"company,omitempty"`
	ServiceInterest string    `json:"service_interest,omitempty"`
	Message         string    `json:"message"`
	IPAddress       string    `json:"ip_address"`
	UserAgent       string    `json:"user_agent,omitempty"`
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
