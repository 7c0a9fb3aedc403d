package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementSubmission(OutcomeSubmitted)
	m.IncrementSubmission(OutcomeFailed)
	m.IncrementSubmission(OutcomeFailed)
	m.IncrementValidationFailure("name_required")
	m.ObserveWebhookLatency(120 * time.Millisecond)
	m.SetActiveSessions(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeSubmitted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("name_required")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveSessions))
	assert.Equal(t, 1, testutil.CollectAndCount(m.WebhookLatency))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementSubmission(OutcomeSubmitted)
		m.IncrementValidationFailure("email_invalid")
		m.ObserveWebhookLatency(time.Second)
		m.SetActiveSessions(1)
	})
}
