package confirmation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebhookSender_SendConfirmation(t *testing.T) {
	var received confirmationPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewWebhookSender(server.URL, discardLogger())

	err := sender.SendConfirmation(context.Background(), "alice@example.com", "https://api.example.com/auth/callback?token=abc")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", received.Email)
	assert.Equal(t, "https://api.example.com/auth/callback?token=abc", received.Link)
}

func TestWebhookSender_RelayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewWebhookSender(server.URL, discardLogger())

	err := sender.SendConfirmation(context.Background(), "alice@example.com", "link")
	assert.Error(t, err)
}

func TestLogSender_NeverFails(t *testing.T) {
	sender := NewLogSender(discardLogger())

	err := sender.SendConfirmation(context.Background(), "alice@example.com", "link")
	assert.NoError(t, err)
}
