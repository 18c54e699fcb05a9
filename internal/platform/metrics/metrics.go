// Package metrics registers the Prometheus instruments for the form pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Submissions     *prometheus.CounterVec
	RateLimitDenied *prometheus.CounterVec
	SpamFlagged     prometheus.Counter
	PersistFailures *prometheus.CounterVec
}

// New creates and registers all metrics with the given registerer. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webforms_submissions_total",
			Help: "Form submissions by form and outcome",
		}, []string{"form", "outcome"}),
		RateLimitDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webforms_rate_limit_denied_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"limiter"}),
		SpamFlagged: factory.NewCounter(prometheus.CounterOpts{
			Name: "webforms_spam_flagged_total",
			Help: "Contact submissions flagged by the spam heuristic",
		}),
		PersistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webforms_persist_failures_total",
			Help: "Swallowed persistence failures by form",
		}, []string{"form"}),
	}
}

// RecordSubmission counts one processed submission.
func (m *Metrics) RecordSubmission(form, outcome string) {
	m.Submissions.WithLabelValues(form, outcome).Inc()
}

// RecordRateLimitDenied counts one rate-limited request.
func (m *Metrics) RecordRateLimitDenied(limiter string) {
	m.RateLimitDenied.WithLabelValues(limiter).Inc()
}

// RecordSpamFlag counts one flagged contact submission.
func (m *Metrics) RecordSpamFlag() {
	m.SpamFlagged.Inc()
}

// RecordPersistFailure counts one swallowed store write failure.
func (m *Metrics) RecordPersistFailure(form string) {
	m.PersistFailures.WithLabelValues(form).Inc()
}
