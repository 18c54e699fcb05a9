// Package newsletter implements subscription handling: validation,
// duplicate/reactivation branching and best-effort persistence with an
// in-process fallback.
package newsletter

import "time"

// Subscription statuses.
const (
	StatusSubscribed   = "subscribed"
	StatusUnsubscribed = "unsubscribed"
)

// DefaultSource tags subscriptions that don't declare where they came from.
const DefaultSource = "website"

// Outcome is the result branch of a subscribe call, surfaced verbatim in
// the response's status field.
type Outcome string

const (
	OutcomeSubscribed        Outcome = "subscribed"
	OutcomeAlreadySubscribed Outcome = "already_subscribed"
	OutcomeReactivated       Outcome = "reactivated"
)

// SubscribeRequest is the raw JSON body of POST /newsletter.
type SubscribeRequest struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
	Source    string   `json:"source"`
}

// Subscriber is one subscription record. The normalized email is unique:
// re-subscribing mutates the existing record instead of duplicating it.
type Subscriber struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	Interests   []string   `json:"interests,omitempty"`
	IPAddress   string     `json:"ip_address"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}
