package service

import "context"

// ConfirmationSender delivers the registration confirmation link to the
// address being registered. The link carries only the opaque token; the
// pending profile data stays server-side.
type ConfirmationSender interface {
	// SendConfirmation delivers the confirmation link to the email.
	SendConfirmation(ctx context.Context, email, link string) error
}
