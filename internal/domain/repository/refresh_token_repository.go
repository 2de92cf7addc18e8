package repository

import (
	"context"
	"errors"

	"ratereview/internal/domain/entity"
)

// ErrRefreshTokenNotFound is returned when no stored session matches a token hash.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository persists long-lived sessions keyed by token hash.
type RefreshTokenRepository interface {
	// Create persists a new refresh token record.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a non-expired refresh token by its SHA-256 hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a refresh token by its hash.
	DeleteByHash(ctx context.Context, tokenHash string) error
}
