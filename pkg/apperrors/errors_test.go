package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	err := New(CodeValidation, "Email is required")

	assert.True(t, Is(err, CodeValidation))
	assert.False(t, Is(err, CodeRateLimited))
	assert.False(t, Is(errors.New("plain"), CodeValidation))
	assert.False(t, Is(nil, CodeValidation))
}

func TestIsWrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", New(CodeRateLimited, "slow down"))

	assert.True(t, Is(err, CodeRateLimited))
	assert.Equal(t, CodeRateLimited, CodeOf(err))
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("database on fire")))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.code), "code %s", tt.code)
	}
}

func TestErrorString(t *testing.T) {
	err := New(CodeValidation, "Invalid email format")
	assert.Equal(t, "VALIDATION_ERROR: Invalid email format", err.Error())
}
