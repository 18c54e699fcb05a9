// Package ratelimit implements per-source fixed-window request limiting.
//
// A window is a counter plus an expiry: the first request from a key opens a
// window, requests inside it increment the counter, and requests beyond the
// limit are rejected without mutation until the window lapses and a fresh one
// replaces it. This is advisory abuse prevention, not a security boundary —
// the source key comes from spoofable proxy headers.
package ratelimit

import (
	"context"
	"strings"
	"time"
)

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, never
// negative.
func (r *Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Round(time.Second).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// Store tracks windows per key. Implementations must be safe for concurrent
// use. The in-memory store is per-process; the Redis store shares windows
// across instances.
type Store interface {
	// Allow consumes one attempt for key, opening a new window if none is
	// active, and reports whether the request is within limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)

	// Reset clears the window for a key.
	Reset(ctx context.Context, key string) error
}

// SanitizeKeySegment escapes the delimiter in key segments so a
// caller-controlled identifier containing ':' cannot collide with an
// adjacent bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
