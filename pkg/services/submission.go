package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"workshop-registration/pkg/clients/webhook"
	"workshop-registration/pkg/logger"
	"workshop-registration/pkg/metrics"
	"workshop-registration/pkg/models"
	"workshop-registration/pkg/utils"
)

var ErrWebhookNotConfigured = errors.New("webhook URL is not configured")

// RegistrationSubmitter defines the interface for delivering a validated registration
type RegistrationSubmitter interface {
	Submit(ctx context.Context, record models.RegistrationRecord) error
}

type registrationSubmitterImpl struct {
	webhookClient webhook.Client
	webhookURL    string
	metrics       *metrics.Metrics
}

// SubmitterOption configures optional collaborators
type SubmitterOption func(*registrationSubmitterImpl)

// WithMetrics records webhook latency
func WithMetrics(m *metrics.Metrics) SubmitterOption {
	return func(s *registrationSubmitterImpl) {
		s.metrics = m
	}
}

// NewRegistrationSubmitter creates a submitter posting to webhookURL
func NewRegistrationSubmitter(
	webhookClient webhook.Client,
	webhookURL string,
	opts ...SubmitterOption,
) RegistrationSubmitter {
	s := &registrationSubmitterImpl{
		webhookClient: webhookClient,
		webhookURL:    webhookURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit makes exactly one delivery attempt
func (s *registrationSubmitterImpl) Submit(ctx context.Context, record models.RegistrationRecord) error {
	log := logger.FromContext(ctx).With(slog.String("email_hash", utils.HashEmail(record.Email)))

	if s.webhookURL == "" {
		log.Error("registration not delivered", slog.String("error", ErrWebhookNotConfigured.Error()))
		return ErrWebhookNotConfigured
	}

	start := time.Now()
	err := s.webhookClient.Post(ctx, s.webhookURL, record)
	elapsed := time.Since(start)
	s.metrics.ObserveWebhookLatency(elapsed)

	if err != nil {
		log.Warn("registration delivery failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed))
		return err
	}

	log.Info("registration delivered", slog.Duration("elapsed", elapsed))
	return nil
}
