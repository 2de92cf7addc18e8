package repository

import (
	"context"
	"errors"

	"ratereview/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRatingNotFound is returned when no rating row matches a lookup.
var ErrRatingNotFound = errors.New("rating not found")

// RatingRepository defines the operations over rating rows. Rows are unique
// per (store, email); Upsert enforces the overwrite semantics.
type RatingRepository interface {
	// Upsert inserts or replaces the rating keyed by (StoreID, Email) and
	// returns the previous rating for that key, or nil if none existed.
	Upsert(ctx context.Context, rating *entity.Rating) (previous *entity.Rating, err error)

	// FindByStoreAndEmail retrieves one rater's current rating of one store.
	FindByStoreAndEmail(ctx context.Context, storeID uuid.UUID, email string) (*entity.Rating, error)

	// ListByStore returns every rating row for a store.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error)

	// ListByEmail returns every rating row submitted by an email.
	ListByEmail(ctx context.Context, email string) ([]*entity.Rating, error)

	// CountByStore returns the authoritative rating row count for a store.
	// The aggregate updater always recounts through this instead of
	// incrementing, which tolerates duplicate or failed prior updates.
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)

	// Count returns the total number of rating rows.
	Count(ctx context.Context) (int64, error)
}
