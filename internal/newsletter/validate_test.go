package newsletter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webforms/pkg/apperrors"
)

func TestParseSubscriptionRejections(t *testing.T) {
	tests := []struct {
		name    string
		req     SubscribeRequest
		message string
	}{
		{
			name:    "missing email",
			req:     SubscribeRequest{},
			message: "Email is required",
		},
		{
			name:    "whitespace email",
			req:     SubscribeRequest{Email: "   "},
			message: "Email is required",
		},
		{
			name:    "malformed email",
			req:     SubscribeRequest{Email: "not-an-email"},
			message: "Invalid email format",
		},
		{
			name:    "email with spaces",
			req:     SubscribeRequest{Email: "a b@example.com"},
			message: "Invalid email format",
		},
		{
			name:    "disposable domain",
			req:     SubscribeRequest{Email: "test@mailinator.com"},
			message: "Disposable email addresses are not allowed",
		},
		{
			name:    "disposable domain mixed case",
			req:     SubscribeRequest{Email: "Test@Tempmail.ORG"},
			message: "Disposable email addresses are not allowed",
		},
		{
			name:    "name too short",
			req:     SubscribeRequest{Email: "a@example.com", Name: "x"},
			message: "Name must be at least 2 characters if provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ParseSubscription(tt.req)
			require.Error(t, err)
			assert.Nil(t, sub)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestParseSubscriptionNormalizes(t *testing.T) {
	sub, err := ParseSubscription(SubscribeRequest{
		Email:     "  Reader@Example.COM  ",
		Name:      "  Grace  ",
		Interests: []string{" go ", "", "   ", "web"},
	})
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", sub.Email)
	assert.Equal(t, "Grace", sub.Name)
	assert.Equal(t, []string{"go", "web"}, sub.Interests)
	assert.Equal(t, DefaultSource, sub.Source)
	assert.Equal(t, StatusSubscribed, sub.Status)
}

func TestParseSubscriptionOptionalName(t *testing.T) {
	sub, err := ParseSubscription(SubscribeRequest{Email: "a@example.com", Source: "footer"})
	require.NoError(t, err)
	assert.Empty(t, sub.Name)
	assert.Equal(t, "footer", sub.Source)
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	once := NormalizeEmail("  Reader@Example.COM ")
	assert.Equal(t, "reader@example.com", once)
	assert.Equal(t, once, NormalizeEmail(once))
}
