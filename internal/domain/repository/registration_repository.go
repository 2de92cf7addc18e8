package repository

import (
	"context"
	"errors"

	"ratereview/internal/domain/entity"
)

// ErrPendingRegistrationNotFound is returned when no pending registration
// matches a token. A consumed or expired token lands here as well; the caller
// maps it to the confirmation-invalid outcome.
var ErrPendingRegistrationNotFound = errors.New("pending registration not found")

// PendingRegistrationRepository stores registrations awaiting confirmation.
type PendingRegistrationRepository interface {
	// FindByToken retrieves the pending registration for an opaque token.
	FindByToken(ctx context.Context, token string) (*entity.PendingRegistration, error)

	// Replace removes any pending registration for the same (role, email)
	// pair and persists the given one. Restarting a registration invalidates
	// the earlier confirmation link.
	Replace(ctx context.Context, pending *entity.PendingRegistration) error

	// Delete removes a pending registration by token. Deleting an already
	// removed row is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes rows past their deadline and reports how many
	// were dropped.
	DeleteExpired(ctx context.Context) (int64, error)
}
