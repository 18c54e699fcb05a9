// Package handler exposes the newsletter endpoints over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"webforms/internal/newsletter"
	"webforms/internal/ratelimit"
	"webforms/pkg/apperrors"
	"webforms/pkg/httputil"
	"webforms/pkg/requestcontext"
)

// rateLimitMessage is the fixed cooldown text for the newsletter endpoint.
const rateLimitMessage = "Too many subscription attempts. Please try again in 10 minutes."

// Confirmation copy per outcome.
var outcomeMessages = map[newsletter.Outcome]string{
	newsletter.OutcomeSubscribed:        "Successfully subscribed! Check your email for a welcome message.",
	newsletter.OutcomeAlreadySubscribed: "You're already subscribed! Thank you for your continued interest.",
	newsletter.OutcomeReactivated:       "Welcome back! Your subscription has been reactivated.",
}

// Service defines the newsletter operations the handler needs.
type Service interface {
	Subscribe(ctx context.Context, req newsletter.SubscribeRequest) (*newsletter.Result, error)
	IsSubscribed(ctx context.Context, email string) bool
}

// Handler handles the newsletter endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	limiter *ratelimit.Limiter
}

// New creates a newsletter Handler.
func New(service Service, limiter *ratelimit.Limiter, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, limiter: limiter}
}

// Register mounts the newsletter routes on the router. The status check is
// not rate limited; only the subscribe path mutates state.
func (h *Handler) Register(r chi.Router) {
	r.With(ratelimit.Middleware(h.limiter, rateLimitMessage)).
		Post("/newsletter", h.handleSubscribe)
	r.Get("/newsletter", h.handleStatus)
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type subscriptionData struct {
	Email     string `json:"email"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

type statusData struct {
	Email        string `json:"email"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req newsletter.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "undecodable newsletter request",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeValidation, "Invalid request body"))
		return
	}

	result, err := h.service.Subscribe(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	data := subscriptionData{Email: result.Email, Status: string(result.Outcome)}
	if result.Timestamp != nil {
		data.Timestamp = result.Timestamp.UTC().Format(time.RFC3339)
	}

	httputil.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: outcomeMessages[result.Outcome],
		Data:    data,
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httputil.WriteError(w, apperrors.New(apperrors.CodeValidation, "Email parameter is required"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: statusData{
			Email:        newsletter.NormalizeEmail(email),
			IsSubscribed: h.service.IsSubscribed(r.Context(), email),
		},
	})
}
