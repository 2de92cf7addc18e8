// Package confirmation provides ConfirmationSender implementations for the
// deferred registration flow.
package confirmation

import (
	"log/slog"

	"ratereview/config"
	"ratereview/internal/domain/constants"
	"ratereview/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for ConfirmationSender, injected by Fx
type SenderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewConfirmationSender creates a ConfirmationSender based on configuration.
// Without configuration the log sender is used, which keeps development
// environments working with no mail relay.
func NewConfirmationSender(params SenderParams) (service.ConfirmationSender, error) {
	logger := params.Logger

	var provider, endpoint string
	if params.Config.Registration != nil {
		provider = params.Config.Registration.Sender.Provider
		endpoint = params.Config.Registration.Sender.Endpoint
	}

	switch provider {
	case "", constants.ConfirmationSenderLog:
		logger.Info("Using log confirmation sender")

		return NewLogSender(logger), nil

	case constants.ConfirmationSenderWebhook:
		if endpoint == "" {
			return nil, errors.New("endpoint is required for webhook sender")
		}
		logger.Info("Using webhook confirmation sender",
			slog.String("endpoint", endpoint),
		)

		return NewWebhookSender(endpoint, logger), nil

	default:
		return nil, errors.Errorf("unknown confirmation sender provider: %s", provider)
	}
}

// Module provides the confirmation sender FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewConfirmationSender),
)
