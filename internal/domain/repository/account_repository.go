// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratereview/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when no account row matches a lookup.
// Callers treat it as a normal control-flow outcome, never as a fault: the
// login flow branches on it to distinguish "not registered" from "wrong
// password".
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations over the role-scoped
// account collections. Every lookup is scoped to one role: the same email can
// hold an independent account under each role.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByRoleAndEmail retrieves the account for an email inside one role
	// collection.
	FindByRoleAndEmail(ctx context.Context, role entity.Role, email string) (*entity.Account, error)

	// Create persists a new account row. A duplicate (role, email) pair
	// surfaces as a domain conflict error.
	Create(ctx context.Context, account *entity.Account) error

	// UpdatePassword replaces the stored password hash for an account.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// ListByRole returns every account of one role collection.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Account, error)

	// CountByRole returns the authoritative row count of one role collection.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
