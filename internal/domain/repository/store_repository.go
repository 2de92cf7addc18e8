package repository

import (
	"context"
	"errors"

	"ratereview/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when no store row matches a lookup.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindByIDForUpdate retrieves a store and locks its row for the rest of
	// the surrounding transaction. Concurrent aggregate writers on the same
	// store serialize on this lock, so the read-modify-write of the sum
	// cannot lose an update.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// List returns every store.
	List(ctx context.Context) ([]*entity.Store, error)

	// ListByEmail returns the stores owned by the given email.
	ListByEmail(ctx context.Context, email string) ([]*entity.Store, error)

	// Create persists a new store with zeroed aggregates.
	Create(ctx context.Context, store *entity.Store) error

	// UpdateAggregate writes both aggregate fields of one store row.
	UpdateAggregate(ctx context.Context, id uuid.UUID, totalCount, totalSum int64) error

	// Count returns the authoritative number of store rows.
	Count(ctx context.Context) (int64, error)
}
