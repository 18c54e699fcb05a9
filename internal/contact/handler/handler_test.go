package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webforms/internal/contact"
	"webforms/internal/notify"
	"webforms/internal/platform/metrics"
	"webforms/internal/platform/middleware"
	"webforms/internal/ratelimit"
	"webforms/pkg/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *contact.InMemoryStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := contact.NewInMemoryStore()

	service, err := contact.NewService(store, notify.NewLogNotifier(log), log,
		metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)

	limiter, err := ratelimit.NewLimiter("contact", 3, 15*time.Minute,
		ratelimit.NewInMemoryStore(), log)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	New(service, limiter, log).Register(r)
	return r, store
}

func submission() map[string]any {
	return map[string]any{
		"name":    "Ada Lovelace",
		"email":   "  Ada@Example.COM ",
		"message": "I would like a quote for a new site.",
	}
}

func TestSubmitSuccess(t *testing.T) {
	router, store := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/contact", submission())
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rr := testutil.DoRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Name      string `json:"name"`
			Email     string `json:"email"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}](t, rr)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, "Ada Lovelace", resp.Data.Name)
	assert.Equal(t, "ada@example.com", resp.Data.Email)

	_, err := time.Parse(time.RFC3339, resp.Data.Timestamp)
	assert.NoError(t, err, "timestamp must be RFC 3339")

	stored := store.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "203.0.113.7", stored[0].IPAddress, "first forwarded-for entry is the source IP")
}

func TestSubmitValidationErrors(t *testing.T) {
	router, store := newTestRouter(t)

	for _, field := range []string{"name", "email", "message"} {
		body := submission()
		delete(body, field)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/contact", body))
		testutil.AssertErrorEnvelope(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
	}
	assert.Empty(t, store.All())
}

func TestSubmitMalformedJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router,
		testutil.NewRequestWithBody(t, http.MethodPost, "/contact", "{not json"))
	testutil.AssertErrorEnvelope(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestSubmitRateLimited(t *testing.T) {
	router, _ := newTestRouter(t)

	send := func(ip string) int {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/contact", submission())
		req.Header.Set("X-Real-IP", ip)
		return testutil.DoRequest(router, req).Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("198.51.100.9"), "request %d", i+1)
	}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/contact", submission())
	req.Header.Set("X-Real-IP", "198.51.100.9")
	rr := testutil.DoRequest(router, req)
	testutil.AssertErrorEnvelope(t, rr, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED")

	// The limit is per source: another IP goes straight through, and so do
	// the limits of a separate process instance (nothing here is shared
	// beyond this router's memory store).
	assert.Equal(t, http.StatusOK, send("198.51.100.10"))
}

func TestSubmitSpamIsAcceptedAnyway(t *testing.T) {
	router, store := newTestRouter(t)

	body := submission()
	body["message"] = "Guaranteed cheapest SEO ranking crypto loans http://a.example http://b.example http://c.example"

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/contact", body))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, store.All(), 1, "flagged submissions are stored for manual review")
}
