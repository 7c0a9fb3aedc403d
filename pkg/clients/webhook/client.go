package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"workshop-registration/pkg/logger"
)

// Client defines the interface for delivering payloads to a webhook
type Client interface {
	Post(ctx context.Context, url string, payload any) error
}

// StatusError is returned when the webhook answers with a non-2xx status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

type clientImpl struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client. A nil httpClient uses one with no timeout.
func NewClient(httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &clientImpl{
		httpClient: httpClient,
	}
}

func (c *clientImpl) Post(ctx context.Context, url string, payload any) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error delivering webhook: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the body carries nothing we consume
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	logger.FromContext(ctx).Debug("webhook delivered", slog.Int("status", resp.StatusCode))
	return nil
}
