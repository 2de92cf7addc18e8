// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"ratereview/config"
	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	"ratereview/internal/domain/service"
	"ratereview/internal/domain/validation"
	"ratereview/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface. It is the single place
// that resolves (email, password, role) triples against the role collections.
type authService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	sender      service.ConfirmationSender
	tokenSource service.ConfirmationTokenSource
	cfg         *config.Config
	logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	sender service.ConfirmationSender,
	tokenSource service.ConfirmationTokenSource,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:   txManager,
		hasher:      hasher,
		tokenSvc:    tokenSvc,
		sender:      sender,
		tokenSource: tokenSource,
		cfg:         cfg,
		logger:      logger,
	}
}

// Login resolves the credential triple to exactly one of three outcomes:
// success, invalid-password, or not-registered. A missing row is an ordinary
// result of the lookup, never a fault.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	role, err := parseRole(input.Role)
	if err != nil {
		return nil, err
	}
	srv.logger.Debug("Starting login", "email", input.Email, "role", role.String())

	var loggedInAccount *entity.Account
	var accessToken, refreshTokenString string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. Look the email up inside the selected role collection only.
		account, err := accountRepo.FindByRoleAndEmail(ctx, role, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrNotRegistered.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find account")
		}

		// 2. The account exists, so a mismatch is an invalid password, not
		// an unknown account.
		if !srv.hasher.Check(input.Password, account.PasswordHash) {
			return domainerrors.ErrInvalidPassword.WrapMessage("login failed")
		}

		// 3. Generate the token pair carrying the normalized role.
		accessToken, refreshTokenString, err = srv.tokenSvc.GenerateTokens(account.ID, role.String(), account.Email)
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		// 4. Securely store the new refresh token.
		newRefreshToken := &entity.RefreshToken{
			AccountID: account.ID,
			TokenHash: hashToken(refreshTokenString),
			ExpiresAt: time.Now().Add(srv.tokenSvc.GetRefreshTokenDuration()),
		}
		if err := repoFactory.RefreshTokenRepo().Create(ctx, newRefreshToken); err != nil {
			return errors.WithStack(err)
		}
		loggedInAccount = account

		return nil
	})

	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "role", role.String(), "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("Login succeeded", "accountID", loggedInAccount.ID, "role", role.String())

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		Role:         role.String(),
		Account:      loggedInAccount,
	}, nil
}

// BeginRegistration starts the deferred two-phase registration: validate,
// reject duplicates, persist a pending record and send the confirmation link.
func (srv *authService) BeginRegistration(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role, err := parseRole(input.Role)
	if err != nil {
		return nil, err
	}
	srv.logger.Info("Starting registration", "email", input.Email, "role", role.String())

	// 1. Validate the form before any round trip.
	if errs := validation.Registration(input.Name, input.Email, input.Address, input.Password); errs != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(errs.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	token, err := srv.tokenSource.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate confirmation token")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 2. Reject emails that already hold an account under this role.
		// The same email under a different role is fine.
		_, err := accountRepo.FindByRoleAndEmail(ctx, role, input.Email)
		if err == nil {
			return domainerrors.ErrAlreadyRegistered.WrapMessage("registration failed")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check existing account")
		}

		// 3. Persist the pending registration; a restart replaces the
		// previous pending row and invalidates its link.
		pending := &entity.PendingRegistration{
			Token:        token,
			Role:         role,
			Email:        input.Email,
			Name:         input.Name,
			Address:      input.Address,
			PasswordHash: hashedPassword,
			ExpiresAt:    time.Now().Add(srv.cfg.Registration.ConfirmationTTL),
		}

		return errors.WithStack(repoFactory.PendingRegistrationRepo().Replace(ctx, pending))
	})
	if err != nil {
		srv.logger.Warn("Registration rejected", "email", input.Email, "role", role.String(), "error", err.Error())

		return nil, err
	}

	// 4. Deliver the confirmation link after the pending row is committed.
	// Only the opaque token travels through the URL.
	link := srv.confirmationLink(token)
	if err := srv.sender.SendConfirmation(ctx, input.Email, link); err != nil {
		srv.logger.Error("Failed to send confirmation link", "email", input.Email, "error", err)

		return nil, domainerrors.ErrConfirmationSendFailed.WrapMessage("failed to send confirmation link")
	}
	srv.logger.Debug("Registration pending confirmation", "email", input.Email, "role", role.String())

	return &usecase.RegisterOutput{
		Status:  "pending",
		Message: "Please check your email for the confirmation link to complete your registration.",
	}, nil
}

// CompleteRegistration consumes the confirmation token and inserts the
// account row. The pending row is deleted in the same transaction, so a
// replayed link fails with the confirmation-invalid outcome.
func (srv *authService) CompleteRegistration(ctx context.Context, input *usecase.CompleteRegistrationInput) (*usecase.CompleteRegistrationOutput, error) {
	srv.logger.Info("Completing registration")

	if input.Token == "" {
		return nil, domainerrors.ErrConfirmationInvalid.WrapMessage("missing confirmation token")
	}

	var createdAccount *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		pendingRepo := repoFactory.PendingRegistrationRepo()

		// 1. Recover the pending profile data from the token.
		pending, err := pendingRepo.FindByToken(ctx, input.Token)
		if err != nil {
			if errors.Is(err, repository.ErrPendingRegistrationNotFound) {
				return domainerrors.ErrConfirmationInvalid.WrapMessage("unknown confirmation token")
			}

			return errors.Wrap(err, "failed to find pending registration")
		}

		if pending.Expired(time.Now()) {
			// Drop the stale row so the table does not accumulate.
			if err := pendingRepo.Delete(ctx, pending.Token); err != nil {
				srv.logger.Warn("Failed to delete expired pending registration", "error", err)
			}

			return domainerrors.ErrConfirmationInvalid.WrapMessage("confirmation token expired")
		}

		// 2. Insert the account row. An account that appeared in the race
		// window surfaces as the already-registered conflict through the
		// (role, email) unique constraint.
		account := &entity.Account{
			Role:         pending.Role,
			Email:        pending.Email,
			Name:         pending.Name,
			Address:      pending.Address,
			PasswordHash: pending.PasswordHash,
		}
		if err := repoFactory.AccountRepo().Create(ctx, account); err != nil {
			return errors.WithStack(err)
		}

		// 3. Consume the token.
		if err := pendingRepo.Delete(ctx, pending.Token); err != nil {
			return errors.Wrap(err, "failed to consume confirmation token")
		}
		createdAccount = account

		return nil
	})
	if err != nil {
		srv.logger.Warn("Registration completion failed", "error", err.Error())

		return nil, err
	}
	srv.logger.Info("Registration completed", "accountID", createdAccount.ID, "role", createdAccount.Role.String())

	return &usecase.CompleteRegistrationOutput{
		Account:       createdAccount,
		DashboardPath: createdAccount.Role.DashboardPath(),
	}, nil
}

// RefreshToken handles the process of issuing a new token pair using a refresh token.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.logger.Info("Attempting to refresh token")

	token, err := srv.tokenSvc.ValidateToken(input.RefreshToken, srv.cfg.SecretKey.Refresh)
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("invalid refresh token")
	}

	accountID, err := accountIDFromToken(token)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("malformed refresh token subject")
	}

	var newAccessToken, newRefreshTokenString string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		// 1. Verify the refresh token is a live session in the database.
		oldHash := hashToken(input.RefreshToken)
		if _, err := refreshRepo.FindByHash(ctx, oldHash); err != nil {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token not found or expired")
		}

		// 2. Fetch the account to reassert its role.
		account, err := repoFactory.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return errors.Wrap(err, "failed to find account")
		}

		// 3. Generate and store the new pair.
		newAccessToken, newRefreshTokenString, err = srv.tokenSvc.GenerateTokens(account.ID, account.Role.String(), account.Email)
		if err != nil {
			return errors.Wrap(err, "failed to generate new tokens")
		}

		newRefreshToken := &entity.RefreshToken{
			AccountID: account.ID,
			TokenHash: hashToken(newRefreshTokenString),
			ExpiresAt: time.Now().Add(srv.tokenSvc.GetRefreshTokenDuration()),
		}
		if err := refreshRepo.Create(ctx, newRefreshToken); err != nil {
			return errors.WithStack(err)
		}

		// 4. Delete the old refresh token.
		if err := refreshRepo.DeleteByHash(ctx, oldHash); err != nil {
			// Log the error but don't fail the transaction, as the caller has a new valid token.
			srv.logger.Warn("Failed to delete old refresh token", "error", err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute refresh token transaction", "error", err)

		return nil, err
	}

	return &usecase.RefreshTokenOutput{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	}, nil
}

// Logout invalidates a session by deleting its refresh token.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.logger.Info("Attempting to log out")

	if _, err := srv.tokenSvc.ValidateToken(input.RefreshToken, srv.cfg.SecretKey.Refresh); err != nil {
		// Even if the token is invalid, proceed to delete it from the database.
		srv.logger.Warn("Logout with invalid token", "error", err)
	}

	tokenHash := hashToken(input.RefreshToken)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.RefreshTokenRepo().DeleteByHash(ctx, tokenHash)
		if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(err, "failed to delete refresh token")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute logout transaction", "error", err)

		return err
	}
	srv.logger.Info("Successfully logged out")

	return nil
}

// ChangePassword validates and replaces an account's password.
func (srv *authService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing password", "accountID", accountID)

	if msg := validation.Password(input.NewPassword); msg != "" {
		return domainerrors.ErrValidationFailed.WithDetails("password: " + msg)
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if _, err := accountRepo.FindByID(ctx, accountID); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("password change failed")
			}

			return errors.Wrap(err, "failed to find account")
		}

		return errors.WithStack(accountRepo.UpdatePassword(ctx, accountID, hashedPassword))
	})
	if err != nil {
		srv.logger.Warn("Password change failed", "accountID", accountID, "error", err.Error())

		return err
	}
	srv.logger.Info("Password changed", "accountID", accountID)

	return nil
}

// confirmationLink builds the callback URL carrying the opaque token.
func (srv *authService) confirmationLink(token string) string {
	base := strings.TrimRight(srv.cfg.Registration.CallbackBaseURL, "/")

	return base + "/auth/callback?token=" + url.QueryEscape(token)
}

// parseRole normalizes and validates a role string from a request.
func parseRole(raw string) (entity.Role, error) {
	role := entity.Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return "", domainerrors.ErrInvalidRole.WrapMessage("unknown role " + raw)
	}

	return role, nil
}

// accountIDFromToken extracts the account ID from a validated token's subject.
func accountIDFromToken(token *jwt.Token) (uuid.UUID, error) {
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to read token subject")
	}

	return uuid.Parse(subject)
}

// hashToken returns the hex SHA-256 of a raw refresh token for storage.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}
