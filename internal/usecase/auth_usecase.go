// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ratereview/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to begin a role-scoped registration.
type RegisterInput struct {
	Role     string `json:"role" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CompleteRegistrationInput identifies the pending registration to finish.
type CompleteRegistrationInput struct {
	Token string `json:"token"`
}

// LoginInput defines the data required for a role-scoped login.
type LoginInput struct {
	Role     string `json:"role" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput carries the refresh token to rotate.
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput carries the refresh token to revoke.
type LogoutInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordInput defines the data for a password change from a dashboard.
type ChangePasswordInput struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput reports that the registration is pending confirmation.
type RegisterOutput struct {
	Status  string `json:"status"` // always "pending"
	Message string `json:"message"`
}

// CompleteRegistrationOutput returns the created account and where the
// confirmed registrant should land.
type CompleteRegistrationOutput struct {
	Account       *entity.Account `json:"account"`
	DashboardPath string          `json:"dashboard_path"`
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Role         string          `json:"role"`
	Account      *entity.Account `json:"account"`
}

// RefreshTokenOutput returns the rotated token pair.
type RefreshTokenOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthUsecase defines the role-scoped credential resolution operations.
// This is the contract that the delivery layer (e.g., API handlers) depends on.
type AuthUsecase interface {
	// BeginRegistration validates the form, rejects duplicate accounts and
	// stores a pending registration whose confirmation link is sent out of band.
	BeginRegistration(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// CompleteRegistration consumes a confirmation token and inserts the
	// account row into its role collection.
	CompleteRegistration(ctx context.Context, input *CompleteRegistrationInput) (*CompleteRegistrationOutput, error)

	// Login resolves (email, password, role) to exactly one of: success,
	// invalid-password, not-registered.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RefreshToken rotates the session's token pair.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)

	// Logout revokes a session.
	Logout(ctx context.Context, input *LogoutInput) error

	// ChangePassword replaces an account's password after validation.
	ChangePassword(ctx context.Context, accountID uuid.UUID, input *ChangePasswordInput) error
}
