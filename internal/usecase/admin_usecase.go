package usecase

import (
	"context"

	"ratereview/internal/domain/entity"
)

// StatsOutput mirrors the admin dashboard's headline numbers. Account totals
// sum the three role collections; all three figures are authoritative counts.
type StatsOutput struct {
	TotalAccounts int64 `json:"total_accounts"`
	TotalStores   int64 `json:"total_stores"`
	TotalRatings  int64 `json:"total_ratings"`
}

// AccountView is an account row tagged with its role for cross-role listings.
type AccountView struct {
	Account *entity.Account `json:"account"`
	Role    string          `json:"role"`
}

// CreateAccountInput defines the admin "new user" form. The account is
// created directly, bypassing the confirmation flow.
type CreateAccountInput struct {
	Role     string `json:"role" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminUsecase defines administration operations.
type AdminUsecase interface {
	// Stats returns the headline totals across all collections.
	Stats(ctx context.Context) (*StatsOutput, error)

	// ListAccounts returns every account across the three role collections.
	ListAccounts(ctx context.Context) ([]*AccountView, error)

	// CreateAccount inserts a validated account row without confirmation.
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)
}
