// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents one profile row inside a role collection. The same email
// may appear in several role collections, so identity is always the pair
// (Role, Email), never the email alone.
type Account struct {
	ID           uuid.UUID // The unique identifier for this account row.
	Role         Role      // The role collection this account belongs to.
	Email        string    // Login identifier, unique within the role collection.
	Name         string    // The account holder's full name.
	Address      string    // The account holder's address.
	PasswordHash string    // bcrypt hash of the account password.
	CreatedAt    time.Time // Timestamp of when this account row was inserted.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
