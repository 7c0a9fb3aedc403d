package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes
const (
	OutcomeSubmitted = "submitted"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"
)

// Metrics holds all Prometheus metrics for the registration service
type Metrics struct {
	// Submit attempts by outcome: submitted, failed, invalid
	Submissions *prometheus.CounterVec

	// Validation failures by the rule that rejected the record
	ValidationFailures *prometheus.CounterVec

	WebhookLatency prometheus.Histogram

	ActiveSessions prometheus.Gauge
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Total registration submit attempts by outcome",
		}, []string{"outcome"}),

		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_validation_failures_total",
			Help: "Total registrations rejected by validation, by rule",
		}, []string{"rule"}),

		WebhookLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "registration_webhook_duration_seconds",
			Help:    "Duration of webhook deliveries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "registration_active_sessions",
			Help: "Number of form sessions currently held in memory",
		}),
	}
}

// IncrementSubmission records a submit attempt outcome
func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

// IncrementValidationFailure records a validation rejection
func (m *Metrics) IncrementValidationFailure(rule string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(rule).Inc()
	}
}

// ObserveWebhookLatency records the duration of one webhook delivery
func (m *Metrics) ObserveWebhookLatency(d time.Duration) {
	if m != nil {
		m.WebhookLatency.Observe(d.Seconds())
	}
}

// SetActiveSessions records the current session count
func (m *Metrics) SetActiveSessions(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}
