package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	"ratereview/internal/domain/service"
	mockRepo "ratereview/internal/mocks/repository"
	mockSvc "ratereview/internal/mocks/service"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ratingServiceFixtures struct {
	service   usecase.RatingUsecase
	factory   *mockRepo.MockRepositoryFactory
	publisher *mockSvc.MockEventPublisher
}

func createTestRatingService(t *testing.T) ratingServiceFixtures {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory()
	txManager := mockRepo.NewMockTransactionManager(factory)
	publisher := new(mockSvc.MockEventPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return ratingServiceFixtures{
		service:   NewRatingService(txManager, publisher, logger),
		factory:   factory,
		publisher: publisher,
	}
}

func TestRatingService_SubmitRating_FirstRating(t *testing.T) {
	fx := createTestRatingService(t)
	ctx := context.Background()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, TotalRatingCount: 0, TotalRatingSum: 0}

	fx.factory.StoreRepository.On("FindByIDForUpdate", ctx, storeID).Return(store, nil)
	fx.factory.RatingRepository.On("Upsert", ctx, mock.MatchedBy(func(r *entity.Rating) bool {
		return r.StoreID == storeID && r.Email == "alice@example.com" &&
			r.Username == "alice" && r.Rating == 4
	})).Return(nil, nil)
	fx.factory.RatingRepository.On("CountByStore", ctx, storeID).Return(int64(1), nil)
	fx.factory.StoreRepository.On("UpdateAggregate", ctx, storeID, int64(1), int64(4)).Return(nil)
	fx.publisher.On("PublishRatingEvent", ctx, mock.AnythingOfType("*service.RatingEvent")).Return(nil)

	output, err := fx.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   "alice@example.com",
		Rating:  4,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.TotalRatingCount)
	assert.Equal(t, int64(4), output.TotalRatingSum)
	fx.factory.StoreRepository.AssertExpectations(t)
}

func TestRatingService_SubmitRating_RepeatSameValueIsIdempotent(t *testing.T) {
	fx := createTestRatingService(t)
	ctx := context.Background()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, TotalRatingCount: 3, TotalRatingSum: 11}
	previous := &entity.Rating{StoreID: storeID, Email: "alice@example.com", Rating: 4}

	fx.factory.StoreRepository.On("FindByIDForUpdate", ctx, storeID).Return(store, nil)
	fx.factory.RatingRepository.On("Upsert", ctx, mock.Anything).Return(previous, nil)
	fx.factory.RatingRepository.On("CountByStore", ctx, storeID).Return(int64(3), nil)
	// 11 + 4 - 4: the aggregate is unchanged.
	fx.factory.StoreRepository.On("UpdateAggregate", ctx, storeID, int64(3), int64(11)).Return(nil)
	fx.publisher.On("PublishRatingEvent", ctx, mock.Anything).Return(nil)

	output, err := fx.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   "alice@example.com",
		Rating:  4,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), output.TotalRatingCount)
	assert.Equal(t, int64(11), output.TotalRatingSum)
}

func TestRatingService_SubmitRating_ChangedValueMovesSumByDelta(t *testing.T) {
	fx := createTestRatingService(t)
	ctx := context.Background()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, TotalRatingCount: 2, TotalRatingSum: 6}
	previous := &entity.Rating{StoreID: storeID, Email: "bob@example.com", Rating: 1}

	fx.factory.StoreRepository.On("FindByIDForUpdate", ctx, storeID).Return(store, nil)
	fx.factory.RatingRepository.On("Upsert", ctx, mock.Anything).Return(previous, nil)
	fx.factory.RatingRepository.On("CountByStore", ctx, storeID).Return(int64(2), nil)
	// 6 - 1 + 5 = 10; count stays at 2 because the row was replaced.
	fx.factory.StoreRepository.On("UpdateAggregate", ctx, storeID, int64(2), int64(10)).Return(nil)

	var published *service.RatingEvent
	fx.publisher.On("PublishRatingEvent", ctx, mock.AnythingOfType("*service.RatingEvent")).
		Run(func(args mock.Arguments) { published = args.Get(1).(*service.RatingEvent) }).
		Return(nil)

	output, err := fx.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   "bob@example.com",
		Rating:  5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), output.TotalRatingCount)
	assert.Equal(t, int64(10), output.TotalRatingSum)
	require.NotNil(t, published)
	assert.Equal(t, 1, published.PreviousRating)
	assert.Equal(t, 5, published.Rating)
}

func TestRatingService_SubmitRating_SerializesOnStoreRow(t *testing.T) {
	// The sum update is a read-modify-write against the stored value, so the
	// store lookup on the submit path must take the row lock. A plain read
	// would let two concurrent raters read the same sum and the later commit
	// silently drop the earlier delta.
	fx := createTestRatingService(t)
	ctx := context.Background()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, TotalRatingCount: 1, TotalRatingSum: 3}

	fx.factory.StoreRepository.On("FindByIDForUpdate", ctx, storeID).Return(store, nil)
	fx.factory.RatingRepository.On("Upsert", ctx, mock.Anything).Return(nil, nil)
	fx.factory.RatingRepository.On("CountByStore", ctx, storeID).Return(int64(2), nil)
	fx.factory.StoreRepository.On("UpdateAggregate", ctx, storeID, int64(2), int64(7)).Return(nil)
	fx.publisher.On("PublishRatingEvent", ctx, mock.Anything).Return(nil)

	_, err := fx.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   "bob@example.com",
		Rating:  4,
	})

	require.NoError(t, err)
	fx.factory.StoreRepository.AssertCalled(t, "FindByIDForUpdate", ctx, storeID)
	fx.factory.StoreRepository.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_OutOfRange(t *testing.T) {
	fx := createTestRatingService(t)

	for _, value := range []int{0, 6, -1} {
		output, err := fx.service.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
			StoreID: uuid.New(),
			Email:   "alice@example.com",
			Rating:  value,
		})

		require.Error(t, err, "rating %d", value)
		assert.Nil(t, output)
		assertAppErrorCode(t, err, domainerrors.ErrRatingOutOfRange.ErrorCode())
	}
	fx.factory.RatingRepository.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_UnknownStore(t *testing.T) {
	fx := createTestRatingService(t)
	ctx := context.Background()
	storeID := uuid.New()

	fx.factory.StoreRepository.On("FindByIDForUpdate", ctx, storeID).
		Return(nil, repository.ErrStoreNotFound)

	output, err := fx.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   "alice@example.com",
		Rating:  3,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assertAppErrorCode(t, err, domainerrors.ErrStoreNotFound.ErrorCode())
}

func TestRatingService_SubmitRating_PublishFailureDoesNotFail(t *testing.T) {
	fx := createTestRatingService(t)
	ctx := context.Background()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID}

	fx.factory.StoreRepository.On("FindByIDForUpdate", ctx, storeID).Return(store, nil)
	fx.factory.RatingRepository.On("Upsert", ctx, mock.Anything).Return(nil, nil)
	fx.factory.RatingRepository.On("CountByStore", ctx, storeID).Return(int64(1), nil)
	fx.factory.StoreRepository.On("UpdateAggregate", ctx, storeID, int64(1), int64(5)).Return(nil)
	fx.publisher.On("PublishRatingEvent", ctx, mock.Anything).Return(assert.AnError)

	output, err := fx.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   "alice@example.com",
		Rating:  5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), output.TotalRatingSum)
}

func TestRatingService_ListAccountRatings(t *testing.T) {
	fx := createTestRatingService(t)
	ctx := context.Background()

	rows := []*entity.Rating{
		{StoreID: uuid.New(), Email: "alice@example.com", Rating: 5},
		{StoreID: uuid.New(), Email: "alice@example.com", Rating: 2},
	}
	fx.factory.RatingRepository.On("ListByEmail", ctx, "alice@example.com").Return(rows, nil)

	ratings, err := fx.service.ListAccountRatings(ctx, "alice@example.com")

	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "alice", usernameFromEmail("alice@example.com"))
	assert.Equal(t, "a.b+c", usernameFromEmail("a.b+c@mail.example.com"))
	assert.Equal(t, "plain", usernameFromEmail("plain"))
}
