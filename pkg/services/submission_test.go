package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"workshop-registration/pkg/metrics"
	"workshop-registration/pkg/models"
)

type mockWebhookClient struct {
	mock.Mock
}

func (m *mockWebhookClient) Post(ctx context.Context, url string, payload any) error {
	args := m.Called(ctx, url, payload)
	return args.Error(0)
}

func TestSubmit_DeliversRecord(t *testing.T) {
	client := &mockWebhookClient{}
	record := validRecord()
	client.On("Post", mock.Anything, "https://hooks.example.com/x", record).Return(nil).Once()

	m := metrics.New(prometheus.NewRegistry())
	err := NewRegistrationSubmitter(client, "https://hooks.example.com/x", WithMetrics(m)).
		Submit(context.Background(), record)

	require.NoError(t, err)
	client.AssertExpectations(t)
	assert.Equal(t, 1, testutil.CollectAndCount(m.WebhookLatency))
}

func TestSubmit_MissingURLFailsBeforeNetwork(t *testing.T) {
	client := &mockWebhookClient{}

	err := NewRegistrationSubmitter(client, "").Submit(context.Background(), validRecord())

	assert.ErrorIs(t, err, ErrWebhookNotConfigured)
	assert.Equal(t, "webhook URL is not configured", err.Error())
	client.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SingleAttemptOnFailure(t *testing.T) {
	client := &mockWebhookClient{}
	boom := errors.New("connection refused")
	client.On("Post", mock.Anything, mock.Anything, mock.Anything).Return(boom).Once()

	err := NewRegistrationSubmitter(client, "https://hooks.example.com/x").
		Submit(context.Background(), validRecord())

	assert.ErrorIs(t, err, boom)
	client.AssertNumberOfCalls(t, "Post", 1)
}

func TestSubmit_PayloadIsWholeRecord(t *testing.T) {
	client := &mockWebhookClient{}
	record := validRecord()
	record.Tools[2].Installed = models.InstalledYes
	record.Dietary.Halal = true

	client.On("Post", mock.Anything, mock.Anything, mock.MatchedBy(func(payload any) bool {
		got, ok := payload.(models.RegistrationRecord)
		return ok && got == record
	})).Return(nil).Once()

	require.NoError(t, NewRegistrationSubmitter(client, "https://hooks.example.com/x").
		Submit(context.Background(), record))
	client.AssertExpectations(t)
}
