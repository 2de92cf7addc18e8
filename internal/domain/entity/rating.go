// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a single rating value.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating represents one rater's current rating of one store. A later rating
// from the same email for the same store replaces the earlier one, so at most
// one row exists per (StoreID, Email).
type Rating struct {
	ID        uuid.UUID // The unique identifier for this rating row.
	StoreID   uuid.UUID // The rated store.
	Email     string    // The rater's email.
	Username  string    // Display name shown to owners, derived from the email local part.
	Rating    int       // The rating value, 1 to 5.
	CreatedAt time.Time // Timestamp of when the first rating for this key was stored.
	UpdatedAt time.Time // Timestamp of the latest overwrite.
}
