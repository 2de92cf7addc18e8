// Package usecase provides hand-rolled testify mocks for the usecase
// interfaces consumed by the delivery layer.
package usecase

import (
	"context"

	"ratereview/internal/domain/entity"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthUsecase is a mock implementation of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) BeginRegistration(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *MockAuthUsecase) CompleteRegistration(ctx context.Context, input *usecase.CompleteRegistrationInput) (*usecase.CompleteRegistrationOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.CompleteRegistrationOutput), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RefreshTokenOutput), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	args := m.Called(ctx, accountID, input)

	return args.Error(0)
}

// MockStoreUsecase is a mock implementation of usecase.StoreUsecase.
type MockStoreUsecase struct {
	mock.Mock
}

func (m *MockStoreUsecase) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUsecase) ListStores(ctx context.Context) ([]*usecase.StoreView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*usecase.StoreView), args.Error(1)
}

func (m *MockStoreUsecase) ListOwnerStores(ctx context.Context, ownerEmail string) ([]*usecase.StoreView, error) {
	args := m.Called(ctx, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*usecase.StoreView), args.Error(1)
}

func (m *MockStoreUsecase) ListStoreRatings(ctx context.Context, storeID uuid.UUID, ownerEmail string) ([]*entity.Rating, error) {
	args := m.Called(ctx, storeID, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Rating), args.Error(1)
}

func (m *MockStoreUsecase) StoreQR(ctx context.Context, storeID uuid.UUID, ownerEmail string) ([]byte, error) {
	args := m.Called(ctx, storeID, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockRatingUsecase is a mock implementation of usecase.RatingUsecase.
type MockRatingUsecase struct {
	mock.Mock
}

func (m *MockRatingUsecase) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*usecase.SubmitRatingOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.SubmitRatingOutput), args.Error(1)
}

func (m *MockRatingUsecase) ListAccountRatings(ctx context.Context, email string) ([]*entity.Rating, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Rating), args.Error(1)
}

// MockAdminUsecase is a mock implementation of usecase.AdminUsecase.
type MockAdminUsecase struct {
	mock.Mock
}

func (m *MockAdminUsecase) Stats(ctx context.Context) (*usecase.StatsOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.StatsOutput), args.Error(1)
}

func (m *MockAdminUsecase) ListAccounts(ctx context.Context) ([]*usecase.AccountView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*usecase.AccountView), args.Error(1)
}

func (m *MockAdminUsecase) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}
