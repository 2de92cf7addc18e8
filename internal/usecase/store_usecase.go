package usecase

import (
	"context"

	"ratereview/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateStoreInput defines the new-store form.
type CreateStoreInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

// StoreView is a store row with its derived average, shaped for dashboards.
type StoreView struct {
	Store         *entity.Store `json:"store"`
	AverageRating float64       `json:"average_rating"`
	HasRatings    bool          `json:"has_ratings"`
}

// StoreUsecase defines store management operations.
type StoreUsecase interface {
	// CreateStore validates the form and inserts a store with zero aggregates.
	CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)

	// ListStores returns every store with its derived average.
	ListStores(ctx context.Context) ([]*StoreView, error)

	// ListOwnerStores returns the stores owned by the given email.
	ListOwnerStores(ctx context.Context, ownerEmail string) ([]*StoreView, error)

	// ListStoreRatings returns the individual ratings of one store. When
	// ownerEmail is non-empty the store must belong to that owner.
	ListStoreRatings(ctx context.Context, storeID uuid.UUID, ownerEmail string) ([]*entity.Rating, error)

	// StoreQR renders a PNG QR code pointing at the store's review page.
	StoreQR(ctx context.Context, storeID uuid.UUID, ownerEmail string) ([]byte, error)
}
