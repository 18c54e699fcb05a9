package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webforms/internal/platform/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingStore simulates a broken limiter backend.
type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*Result, error) {
	return nil, errors.New("backend unavailable")
}

func (failingStore) Reset(context.Context, string) error {
	return errors.New("backend unavailable")
}

func TestNewLimiterValidation(t *testing.T) {
	store := NewInMemoryStore()
	log := discardLogger()

	_, err := NewLimiter("", 3, time.Minute, store, log)
	assert.Error(t, err)

	_, err = NewLimiter("contact", 0, time.Minute, store, log)
	assert.Error(t, err)

	_, err = NewLimiter("contact", 3, time.Minute, nil, log)
	assert.Error(t, err)

	l, err := NewLimiter("contact", 3, time.Minute, store, log)
	require.NoError(t, err)
	assert.Equal(t, "contact", l.Name())
}

func TestLimiterEnforcesLimit(t *testing.T) {
	l, err := NewLimiter("contact", 3, 15*time.Minute, NewInMemoryStore(), discardLogger())
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.True(t, l.Check(ctx, "9.9.9.9").Allowed)
	}
	assert.False(t, l.Check(ctx, "9.9.9.9").Allowed)
	assert.True(t, l.Check(ctx, "8.8.8.8").Allowed, "other sources keep their own window")
}

func TestLimitersWithSharedStoreDoNotCollide(t *testing.T) {
	store := NewInMemoryStore()
	log := discardLogger()

	contact, err := NewLimiter("contact", 1, time.Minute, store, log)
	require.NoError(t, err)
	news, err := NewLimiter("newsletter", 1, time.Minute, store, log)
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, contact.Check(ctx, "1.2.3.4").Allowed)
	assert.False(t, contact.Check(ctx, "1.2.3.4").Allowed)
	assert.True(t, news.Check(ctx, "1.2.3.4").Allowed,
		"limiter names must namespace the shared store")
}

func TestLimiterSanitizesSourceKey(t *testing.T) {
	store := NewInMemoryStore()
	l, err := NewLimiter("contact", 1, time.Minute, store, discardLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, l.Check(ctx, "evil:key").Allowed)
	// The colon is escaped, so the consumed window lives under the
	// sanitized key rather than a forged bucket.
	assert.Equal(t, 1, store.Count(ctx, "contact:evil_key"))
}

func TestLimiterDisabled(t *testing.T) {
	l, err := NewLimiter("contact", 1, time.Minute, NewInMemoryStore(), discardLogger(),
		WithDisabled(true))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		assert.True(t, l.Check(ctx, "1.2.3.4").Allowed)
	}
}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	l, err := NewLimiter("contact", 1, time.Minute, failingStore{}, discardLogger())
	require.NoError(t, err)

	res := l.Check(context.Background(), "1.2.3.4")
	assert.True(t, res.Allowed, "a broken limiter backend must not reject requests")
}

func TestLimiterRecordsDenials(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	l, err := NewLimiter("contact", 1, time.Minute, NewInMemoryStore(), discardLogger(),
		WithMetrics(m))
	require.NoError(t, err)

	ctx := context.Background()
	l.Check(ctx, "1.2.3.4")
	l.Check(ctx, "1.2.3.4")

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.RateLimitDenied.WithLabelValues("contact")))
}
