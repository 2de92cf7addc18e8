// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PendingRegistration holds the profile data of a registration that has been
// started but not yet confirmed. The row is keyed by a single opaque token
// embedded in the confirmation link; the profile data itself never travels
// through the URL. Completing (or expiring) the registration removes the row,
// which gives the confirmation link its read-once semantics.
type PendingRegistration struct {
	ID           uuid.UUID // The unique identifier for this pending row.
	Token        string    // Opaque confirmation token carried by the emailed link.
	Role         Role      // The role collection the account will be created in.
	Email        string    // The email being registered.
	Name         string    // The pending account holder's full name.
	Address      string    // The pending account holder's address.
	PasswordHash string    // bcrypt hash of the chosen password.
	ExpiresAt    time.Time // After this instant the token is rejected.
	CreatedAt    time.Time // Timestamp of when the registration was started.
}

// Expired reports whether the pending registration is past its deadline.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
