package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating the JWT
// access/refresh pair handed out on login. The access token carries the
// account's role for stateless authorization.
type TokenService interface {
	// GenerateTokens creates a new access and refresh token for an account.
	// The access token carries the role and email for stateless authorization.
	GenerateTokens(accountID uuid.UUID, role, email string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks the validity of a token string against a secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
