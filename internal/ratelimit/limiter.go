package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"webforms/internal/platform/metrics"
)

// Limiter applies one named fixed-window policy over a Store. Two
// independent instances exist in the server (contact, newsletter); they may
// share a store because keys are prefixed with the limiter name.
type Limiter struct {
	name     string
	limit    int
	window   time.Duration
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(l *Limiter) {
		l.disabled = disabled
	}
}

// WithMetrics records denials on the given metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

// NewLimiter creates a named limiter.
func NewLimiter(name string, limit int, window time.Duration, store Store, logger *slog.Logger, opts ...Option) (*Limiter, error) {
	if name == "" {
		return nil, fmt.Errorf("limiter name is required")
	}
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("limiter %q: limit and window must be positive", name)
	}
	if store == nil {
		return nil, fmt.Errorf("limiter %q: store is required", name)
	}
	if logger == nil {
		return nil, fmt.Errorf("limiter %q: logger is required", name)
	}

	l := &Limiter{name: name, limit: limit, window: window, store: store, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	if l.disabled {
		logger.Info("rate limiting disabled", "limiter", name)
	}
	return l, nil
}

// Name returns the limiter's policy name.
func (l *Limiter) Name() string {
	return l.name
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Check consumes one attempt for the source key. Store failures fail open:
// a broken limiter backend must not take the form endpoints down with it.
func (l *Limiter) Check(ctx context.Context, sourceKey string) *Result {
	if l.disabled {
		return &Result{Allowed: true, Limit: l.limit, Remaining: l.limit}
	}

	key := l.name + ":" + SanitizeKeySegment(sourceKey)
	result, err := l.store.Allow(ctx, key, l.limit, l.window)
	if err != nil {
		l.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
			"limiter", l.name,
			"error", err,
		)
		return &Result{Allowed: true, Limit: l.limit, Remaining: l.limit}
	}

	if !result.Allowed && l.metrics != nil {
		l.metrics.RecordRateLimitDenied(l.name)
	}
	return result
}
