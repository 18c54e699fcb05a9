package ratelimit

import (
	"net/http"
	"strconv"

	"webforms/pkg/apperrors"
	"webforms/pkg/httputil"
	"webforms/pkg/requestcontext"
)

// Middleware rejects requests whose source IP has exhausted the limiter's
// window. message is the fixed client-facing cooldown text for this
// endpoint. Rate-limit headers are added to allowed and rejected responses
// alike.
func Middleware(l *Limiter, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			result := l.Check(ctx, requestcontext.ClientIP(ctx))

			addRateLimitHeaders(w, result)

			if !result.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(requestcontext.Now(ctx))))
				httputil.WriteError(w, apperrors.New(apperrors.CodeRateLimited, message))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	if !result.ResetAt.IsZero() {
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	}
}
