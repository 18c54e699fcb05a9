// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"webforms/pkg/apperrors"
)

// internalMessage is returned for anything outside the error taxonomy so
// backend details never leak to callers.
const internalMessage = "Internal server error. Please try again later."

// ErrorResponse is the wire shape of all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded error into its HTTP status and envelope.
// Validation and rate-limit messages are surfaced verbatim; everything else
// collapses to a generic internal error.
func WriteError(w http.ResponseWriter, err error) {
	message := internalMessage
	code := apperrors.CodeOf(err)

	var appErr *apperrors.Error
	if code != apperrors.CodeInternal && errors.As(err, &appErr) {
		message = appErr.Message
	}

	WriteJSON(w, apperrors.ToHTTPStatus(code), ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// WriteInternalError writes the fixed 500 envelope.
func WriteInternalError(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: internalMessage,
		Code:  string(apperrors.CodeInternal),
	})
}
