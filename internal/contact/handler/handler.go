// Package handler exposes the contact form over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"webforms/internal/contact"
	"webforms/internal/ratelimit"
	"webforms/pkg/apperrors"
	"webforms/pkg/httputil"
	"webforms/pkg/requestcontext"
)

// rateLimitMessage is the fixed cooldown text for the contact endpoint.
const rateLimitMessage = "Too many requests. Please try again in 15 minutes."

// successMessage mirrors the marketing site's contact confirmation copy.
const successMessage = "Thank you for your message! We'll get back to you within 24 hours."

// Service defines the contact operations the handler needs.
type Service interface {
	Submit(ctx context.Context, req contact.SubmitRequest) (*contact.Submission, error)
}

// Handler handles the contact form endpoint.
type Handler struct {
	logger  *slog.Logger
	service Service
	limiter *ratelimit.Limiter
}

// New creates a contact Handler.
func New(service Service, limiter *ratelimit.Limiter, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, limiter: limiter}
}

// Register mounts the contact routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.With(ratelimit.Middleware(h.limiter, rateLimitMessage)).
		Post("/contact", h.handleSubmit)
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type submissionData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contact.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "undecodable contact request",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeValidation, "Invalid request body"))
		return
	}

	sub, err := h.service.Submit(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: successMessage,
		Data: submissionData{
			Name:      sub.Name,
			Email:     sub.Email,
			Timestamp: sub.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
}
