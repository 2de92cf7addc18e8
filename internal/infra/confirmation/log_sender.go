package confirmation

import (
	"context"
	"log/slog"

	"ratereview/internal/domain/service"
)

// logSender writes confirmation links to the log instead of delivering them.
// Meant for development and tests.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs the link.
func NewLogSender(logger *slog.Logger) service.ConfirmationSender {
	return &logSender{logger: logger}
}

func (s *logSender) SendConfirmation(_ context.Context, email, link string) error {
	s.logger.Info("[Confirmation] Link ready",
		slog.String("email", email),
		slog.String("link", link),
	)

	return nil
}
