package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ratereview/config"
	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	mockRepo "ratereview/internal/mocks/repository"
	mockSvc "ratereview/internal/mocks/service"
	"ratereview/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testName     = "Jonathan Michael Smithers"
	testEmail    = "jonathan.smithers@example.com"
	testAddress  = "12 Harbor Lane, Springfield"
	testPassword = "Passw0rd!"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service     usecase.AuthUsecase
	factory     *mockRepo.MockRepositoryFactory
	hasher      *mockSvc.MockPasswordHasher
	tokenSvc    *mockSvc.MockTokenService
	sender      *mockSvc.MockConfirmationSender
	tokenSource *mockSvc.MockConfirmationTokenSource
	cfg         *config.Config
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory()
	txManager := mockRepo.NewMockTransactionManager(factory)
	hasher := new(mockSvc.MockPasswordHasher)
	tokenSvc := new(mockSvc.MockTokenService)
	sender := new(mockSvc.MockConfirmationSender)
	tokenSource := new(mockSvc.MockConfirmationTokenSource)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Registration: &config.RegistrationConfig{
			CallbackBaseURL: "https://api.example.com",
			ConfirmationTTL: 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	service := NewAuthService(txManager, hasher, tokenSvc, sender, tokenSource, cfg, logger)

	return authServiceFixtures{
		service:     service,
		factory:     factory,
		hasher:      hasher,
		tokenSvc:    tokenSvc,
		sender:      sender,
		tokenSource: tokenSource,
		cfg:         cfg,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	account := &entity.Account{
		ID:           uuid.New(),
		Role:         entity.RoleUser,
		Email:        testEmail,
		PasswordHash: "hashed",
	}

	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, testEmail).
		Return(account, nil)
	fx.hasher.On("Check", testPassword, "hashed").Return(true)
	fx.tokenSvc.On("GenerateTokens", account.ID, "user", testEmail).Return("access-token", "refresh-token", nil)
	fx.tokenSvc.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)
	fx.factory.RefreshTokenRepository.On("Create", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Role:     "user",
		Email:    testEmail,
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, "user", output.Role)
	assert.Equal(t, account, output.Account)
	fx.factory.RefreshTokenRepository.AssertExpectations(t)
}

func TestAuthService_Login_NotRegistered(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleOwner, testEmail).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Role:     "owner",
		Email:    testEmail,
		Password: testPassword,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrNotRegistered.ErrorCode())
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	account := &entity.Account{
		ID:           uuid.New(),
		Role:         entity.RoleUser,
		Email:        testEmail,
		PasswordHash: "hashed",
	}

	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, testEmail).
		Return(account, nil)
	fx.hasher.On("Check", "WrongPass1!", "hashed").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Role:     "user",
		Email:    testEmail,
		Password: "WrongPass1!",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrInvalidPassword.ErrorCode())
	fx.tokenSvc.AssertNotCalled(t, "GenerateTokens", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_RoleScoping(t *testing.T) {
	// The same email may exist under another role; only the requested
	// collection is consulted.
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleAdmin, testEmail).
		Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Role:     "admin",
		Email:    testEmail,
		Password: testPassword,
	})

	require.Error(t, err)
	assertAppErrorCode(t, err, domainerrors.ErrNotRegistered.ErrorCode())
	fx.factory.AccountRepository.AssertNumberOfCalls(t, "FindByRoleAndEmail", 1)
}

func TestAuthService_Login_InvalidRole(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Role:     "superuser",
		Email:    testEmail,
		Password: testPassword,
	})

	require.Error(t, err)
	assertAppErrorCode(t, err, domainerrors.ErrInvalidRole.ErrorCode())
}

func TestAuthService_BeginRegistration_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", testPassword).Return("hashed", nil)
	fx.tokenSource.On("Generate").Return("opaque-token", nil)
	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, testEmail).
		Return(nil, repository.ErrAccountNotFound)
	fx.factory.PendingRepository.On("Replace", ctx, mock.MatchedBy(func(p *entity.PendingRegistration) bool {
		return p.Token == "opaque-token" &&
			p.Role == entity.RoleUser &&
			p.Email == testEmail &&
			p.PasswordHash == "hashed" &&
			p.ExpiresAt.After(time.Now())
	})).Return(nil)
	fx.sender.On("SendConfirmation", ctx, testEmail,
		"https://api.example.com/auth/callback?token=opaque-token").Return(nil)

	output, err := fx.service.BeginRegistration(ctx, &usecase.RegisterInput{
		Role:     "user",
		Name:     testName,
		Email:    testEmail,
		Address:  testAddress,
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", output.Status)
	fx.factory.PendingRepository.AssertExpectations(t)
	fx.sender.AssertExpectations(t)
}

func TestAuthService_BeginRegistration_TokenNotGuessableFromLink(t *testing.T) {
	// The confirmation link must carry only the opaque token, never the
	// profile fields or credentials.
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", testPassword).Return("hashed", nil)
	fx.tokenSource.On("Generate").Return("tok123", nil)
	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleOwner, testEmail).
		Return(nil, repository.ErrAccountNotFound)
	fx.factory.PendingRepository.On("Replace", ctx, mock.Anything).Return(nil)

	var sentLink string
	fx.sender.On("SendConfirmation", ctx, testEmail, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentLink = args.String(2) }).
		Return(nil)

	_, err := fx.service.BeginRegistration(ctx, &usecase.RegisterInput{
		Role:     "owner",
		Name:     testName,
		Email:    testEmail,
		Address:  testAddress,
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/auth/callback?token=tok123", sentLink)
	assert.NotContains(t, sentLink, testPassword)
	assert.NotContains(t, sentLink, testEmail)
}

func TestAuthService_BeginRegistration_Duplicate(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", testPassword).Return("hashed", nil)
	fx.tokenSource.On("Generate").Return("opaque-token", nil)
	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, testEmail).
		Return(&entity.Account{ID: uuid.New()}, nil)

	output, err := fx.service.BeginRegistration(ctx, &usecase.RegisterInput{
		Role:     "user",
		Name:     testName,
		Email:    testEmail,
		Address:  testAddress,
		Password: testPassword,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrAlreadyRegistered.ErrorCode())
	fx.sender.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_BeginRegistration_ValidationFailure(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.BeginRegistration(context.Background(), &usecase.RegisterInput{
		Role:     "user",
		Name:     "Too Short",
		Email:    "not-an-email",
		Address:  testAddress,
		Password: "weak",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed.ErrorCode())
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_BeginRegistration_SendFailureSurfaces(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", testPassword).Return("hashed", nil)
	fx.tokenSource.On("Generate").Return("opaque-token", nil)
	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, testEmail).
		Return(nil, repository.ErrAccountNotFound)
	fx.factory.PendingRepository.On("Replace", ctx, mock.Anything).Return(nil)
	fx.sender.On("SendConfirmation", ctx, testEmail, mock.Anything).
		Return(assert.AnError)

	output, err := fx.service.BeginRegistration(ctx, &usecase.RegisterInput{
		Role:     "user",
		Name:     testName,
		Email:    testEmail,
		Address:  testAddress,
		Password: testPassword,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrConfirmationSendFailed.ErrorCode())
}

func TestAuthService_CompleteRegistration_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	pending := &entity.PendingRegistration{
		Token:        "opaque-token",
		Role:         entity.RoleOwner,
		Email:        testEmail,
		Name:         testName,
		Address:      testAddress,
		PasswordHash: "hashed",
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	fx.factory.PendingRepository.On("FindByToken", ctx, "opaque-token").Return(pending, nil)
	fx.factory.AccountRepository.On("Create", ctx, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Role == entity.RoleOwner && a.Email == testEmail && a.PasswordHash == "hashed"
	})).Return(nil)
	fx.factory.PendingRepository.On("Delete", ctx, "opaque-token").Return(nil)

	output, err := fx.service.CompleteRegistration(ctx, &usecase.CompleteRegistrationInput{Token: "opaque-token"})

	require.NoError(t, err)
	assert.Equal(t, "/pages/ownerdashboard", output.DashboardPath)
	assert.Equal(t, testEmail, output.Account.Email)
	fx.factory.PendingRepository.AssertExpectations(t)
}

func TestAuthService_CompleteRegistration_UnknownToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.factory.PendingRepository.On("FindByToken", ctx, "stale").
		Return(nil, repository.ErrPendingRegistrationNotFound)

	output, err := fx.service.CompleteRegistration(ctx, &usecase.CompleteRegistrationInput{Token: "stale"})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrConfirmationInvalid.ErrorCode())
}

func TestAuthService_CompleteRegistration_ExpiredToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	pending := &entity.PendingRegistration{
		Token:     "opaque-token",
		Role:      entity.RoleUser,
		Email:     testEmail,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	fx.factory.PendingRepository.On("FindByToken", ctx, "opaque-token").Return(pending, nil)
	fx.factory.PendingRepository.On("Delete", ctx, "opaque-token").Return(nil)

	output, err := fx.service.CompleteRegistration(ctx, &usecase.CompleteRegistrationInput{Token: "opaque-token"})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrConfirmationInvalid.ErrorCode())
	fx.factory.AccountRepository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_CompleteRegistration_EmptyToken(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.CompleteRegistration(context.Background(), &usecase.CompleteRegistrationInput{})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrConfirmationInvalid.ErrorCode())
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	accountID := uuid.New()
	account := &entity.Account{ID: accountID, Role: entity.RoleUser, Email: testEmail}
	validToken := &jwt.Token{
		Valid:  true,
		Claims: jwt.MapClaims{"sub": accountID.String()},
	}

	fx.tokenSvc.On("ValidateToken", "old-refresh", "refresh-secret").Return(validToken, nil)
	fx.factory.RefreshTokenRepository.On("FindByHash", ctx, hashToken("old-refresh")).
		Return(&entity.RefreshToken{AccountID: accountID}, nil)
	fx.factory.AccountRepository.On("FindByID", ctx, accountID).Return(account, nil)
	fx.tokenSvc.On("GenerateTokens", accountID, "user", testEmail).Return("new-access", "new-refresh", nil)
	fx.tokenSvc.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)
	fx.factory.RefreshTokenRepository.On("Create", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)
	fx.factory.RefreshTokenRepository.On("DeleteByHash", ctx, hashToken("old-refresh")).Return(nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
	fx.factory.RefreshTokenRepository.AssertExpectations(t)
}

func TestAuthService_RefreshToken_RevokedSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	accountID := uuid.New()
	validToken := &jwt.Token{
		Valid:  true,
		Claims: jwt.MapClaims{"sub": accountID.String()},
	}

	fx.tokenSvc.On("ValidateToken", "revoked", "refresh-secret").Return(validToken, nil)
	fx.factory.RefreshTokenRepository.On("FindByHash", ctx, hashToken("revoked")).
		Return(nil, repository.ErrRefreshTokenNotFound)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "revoked"})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrRefreshTokenInvalid.ErrorCode())
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokenSvc.On("ValidateToken", "refresh-token", "refresh-secret").
		Return(&jwt.Token{Valid: true}, nil)
	fx.factory.RefreshTokenRepository.On("DeleteByHash", ctx, hashToken("refresh-token")).Return(nil)

	err := fx.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	fx.factory.RefreshTokenRepository.AssertExpectations(t)
}

func TestAuthService_ChangePassword_InvalidNewPassword(t *testing.T) {
	fx := createTestAuthService(t)

	err := fx.service.ChangePassword(context.Background(), uuid.New(), &usecase.ChangePasswordInput{
		NewPassword: "short",
	})

	require.Error(t, err)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed.ErrorCode())
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	accountID := uuid.New()

	fx.hasher.On("Hash", "NewPassw0rd!").Return("new-hash", nil)
	fx.factory.AccountRepository.On("FindByID", ctx, accountID).
		Return(&entity.Account{ID: accountID}, nil)
	fx.factory.AccountRepository.On("UpdatePassword", ctx, accountID, "new-hash").Return(nil)

	err := fx.service.ChangePassword(ctx, accountID, &usecase.ChangePasswordInput{
		NewPassword: "NewPassw0rd!",
	})

	require.NoError(t, err)
	fx.factory.AccountRepository.AssertExpectations(t)
}

func TestAuthService_RegistrationRoundTrip(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	const (
		name     = "Jane Doe Long Enough Name"
		email    = "jane@example.com"
		address  = "123 Main St"
		password = "Passw0rd!"
	)

	fx.hasher.On("Hash", password).Return("round-trip-hash", nil)
	fx.tokenSource.On("Generate").Return("round-trip-token", nil)
	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, email).
		Return(nil, repository.ErrAccountNotFound).Once()

	var pending *entity.PendingRegistration
	fx.factory.PendingRepository.On("Replace", ctx, mock.AnythingOfType("*entity.PendingRegistration")).
		Run(func(args mock.Arguments) {
			pending = args.Get(1).(*entity.PendingRegistration)
		}).Return(nil)
	fx.sender.On("SendConfirmation", ctx, email, mock.AnythingOfType("string")).Return(nil)

	begin, err := fx.service.BeginRegistration(ctx, &usecase.RegisterInput{
		Role:     "user",
		Name:     name,
		Email:    email,
		Address:  address,
		Password: password,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", begin.Status)
	require.NotNil(t, pending)
	assert.Equal(t, "round-trip-token", pending.Token)

	var account *entity.Account
	fx.factory.PendingRepository.On("FindByToken", ctx, pending.Token).Return(pending, nil)
	fx.factory.AccountRepository.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account = args.Get(1).(*entity.Account)
			account.ID = uuid.New()
		}).Return(nil)
	fx.factory.PendingRepository.On("Delete", ctx, pending.Token).Return(nil)

	complete, err := fx.service.CompleteRegistration(ctx, &usecase.CompleteRegistrationInput{Token: pending.Token})
	require.NoError(t, err)
	assert.Equal(t, "/pages/userdashboard", complete.DashboardPath)
	require.NotNil(t, account)
	assert.Equal(t, "round-trip-hash", account.PasswordHash)

	// Log in against the row the confirmation inserted.
	fx.factory.AccountRepository.On("FindByRoleAndEmail", ctx, entity.RoleUser, email).
		Return(account, nil).Once()
	fx.hasher.On("Check", password, "round-trip-hash").Return(true)
	fx.tokenSvc.On("GenerateTokens", account.ID, "user", email).Return("access", "refresh", nil)
	fx.tokenSvc.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)
	fx.factory.RefreshTokenRepository.On("Create", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	login, err := fx.service.Login(ctx, &usecase.LoginInput{Role: "user", Email: email, Password: password})
	require.NoError(t, err)
	assert.Equal(t, "access", login.AccessToken)
	assert.Equal(t, account, login.Account)
}

// assertAppErrorCode checks that err carries the given application error code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}
