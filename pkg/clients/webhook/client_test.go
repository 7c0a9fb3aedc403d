package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Post(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotAuth   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewClient(nil).Post(context.Background(), srv.URL, map[string]string{"name": "Ada"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "Ada", gotBody["name"])
}

func TestClient_Post_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.Client()).Post(context.Background(), srv.URL, struct{}{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "request failed with status code 500", err.Error())
}

func TestClient_Post_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(nil).Post(context.Background(), url, struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error delivering webhook")
}

func TestClient_Post_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(nil).Post(ctx, srv.URL, struct{}{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Post_InvalidURL(t *testing.T) {
	err := NewClient(nil).Post(context.Background(), "://bad", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating request")
}
