package confirmation

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ratereview/internal/domain/service"

	"github.com/pkg/errors"
)

// webhookSender posts the confirmation link to an HTTP relay (typically a
// mail service bridge) as a JSON payload.
type webhookSender struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// confirmationPayload is the body posted to the relay.
type confirmationPayload struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}

// NewWebhookSender creates a sender that delivers links through an HTTP relay.
func NewWebhookSender(endpoint string, logger *slog.Logger) service.ConfirmationSender {
	return &webhookSender{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (s *webhookSender) SendConfirmation(ctx context.Context, email, link string) error {
	body, err := json.Marshal(confirmationPayload{Email: email, Link: link})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("relay returned non-success status: %d", resp.StatusCode)
	}

	s.logger.Info("[Confirmation] Link delivered",
		slog.String("email", email),
	)

	return nil
}
