// Package constants holds shared configuration value constants.
package constants

const (
	// PubSubProviderLocal selects the local HTTP push publisher.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// ConfirmationSenderLog selects the development sender that only logs links.
	ConfirmationSenderLog = "log"
	// ConfirmationSenderWebhook selects the HTTP relay sender.
	ConfirmationSenderWebhook = "webhook"
)
