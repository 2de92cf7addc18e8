package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	mockRepo "ratereview/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestRegistrationSweeper(t *testing.T) (*RegistrationSweeper, *mockRepo.MockRepositoryFactory) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory()
	txManager := mockRepo.NewMockTransactionManager(factory)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRegistrationSweeper(txManager, logger), factory
}

func TestRegistrationSweeper_Sweep(t *testing.T) {
	sweeper, factory := createTestRegistrationSweeper(t)
	ctx := context.Background()

	factory.PendingRepository.On("DeleteExpired", ctx).Return(int64(3), nil)

	require.NoError(t, sweeper.Sweep(ctx))
	factory.PendingRepository.AssertExpectations(t)
}

func TestRegistrationSweeper_Sweep_NothingExpired(t *testing.T) {
	sweeper, factory := createTestRegistrationSweeper(t)
	ctx := context.Background()

	factory.PendingRepository.On("DeleteExpired", ctx).Return(int64(0), nil)

	require.NoError(t, sweeper.Sweep(ctx))
	factory.PendingRepository.AssertExpectations(t)
}

func TestRegistrationSweeper_Sweep_PropagatesError(t *testing.T) {
	sweeper, factory := createTestRegistrationSweeper(t)
	ctx := context.Background()

	factory.PendingRepository.On("DeleteExpired", ctx).Return(int64(0), errors.New("connection reset"))

	err := sweeper.Sweep(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRegistrationSweeper_StopEndsLoop(t *testing.T) {
	sweeper, factory := createTestRegistrationSweeper(t)

	factory.PendingRepository.On("DeleteExpired", mock.Anything).Return(int64(0), nil).Maybe()

	sweeper.Start(context.Background())
	sweeper.Stop()
}
