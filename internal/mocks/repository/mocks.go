// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"

	"ratereview/internal/domain/entity"
	"ratereview/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByRoleAndEmail(ctx context.Context, role entity.Role, email string) (*entity.Account, error) {
	args := m.Called(ctx, role, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)

	return args.Error(0)
}

func (m *MockAccountRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	args := m.Called(ctx, role)

	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of repository.StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context) ([]*entity.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Store, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) Create(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *MockStoreRepository) UpdateAggregate(ctx context.Context, id uuid.UUID, totalCount, totalSum int64) error {
	args := m.Called(ctx, id, totalCount, totalSum)

	return args.Error(0)
}

func (m *MockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// MockRatingRepository is a mock implementation of repository.RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	args := m.Called(ctx, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByStoreAndEmail(ctx context.Context, storeID uuid.UUID, email string) (*entity.Rating, error) {
	args := m.Called(ctx, storeID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Rating, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// MockPendingRegistrationRepository is a mock implementation of repository.PendingRegistrationRepository.
type MockPendingRegistrationRepository struct {
	mock.Mock
}

func (m *MockPendingRegistrationRepository) FindByToken(ctx context.Context, token string) (*entity.PendingRegistration, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PendingRegistration), args.Error(1)
}

func (m *MockPendingRegistrationRepository) Replace(ctx context.Context, pending *entity.PendingRegistration) error {
	args := m.Called(ctx, pending)

	return args.Error(0)
}

func (m *MockPendingRegistrationRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockPendingRegistrationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// MockRefreshTokenRepository is a mock implementation of repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)

	return args.Error(0)
}

// MockRepositoryFactory hands out the mock repositories above.
type MockRepositoryFactory struct {
	mock.Mock
	AccountRepository      *MockAccountRepository
	StoreRepository        *MockStoreRepository
	RatingRepository       *MockRatingRepository
	PendingRepository      *MockPendingRegistrationRepository
	RefreshTokenRepository *MockRefreshTokenRepository
}

// NewMockRepositoryFactory builds a factory with every mock repository ready.
func NewMockRepositoryFactory() *MockRepositoryFactory {
	return &MockRepositoryFactory{
		AccountRepository:      new(MockAccountRepository),
		StoreRepository:        new(MockStoreRepository),
		RatingRepository:       new(MockRatingRepository),
		PendingRepository:      new(MockPendingRegistrationRepository),
		RefreshTokenRepository: new(MockRefreshTokenRepository),
	}
}

func (m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	return m.AccountRepository
}

func (m *MockRepositoryFactory) StoreRepo() repository.StoreRepository {
	return m.StoreRepository
}

func (m *MockRepositoryFactory) RatingRepo() repository.RatingRepository {
	return m.RatingRepository
}

func (m *MockRepositoryFactory) PendingRegistrationRepo() repository.PendingRegistrationRepository {
	return m.PendingRepository
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return m.RefreshTokenRepository
}

// MockTransactionManager runs the given function against a fixed factory,
// without any real transaction.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory
	// Err, when set, is returned without invoking the function.
	Err error
}

// NewMockTransactionManager wires a transaction manager around the factory.
func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
