package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "ratereview/internal/delivery/context"
	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	"ratereview/internal/domain/service"
	"ratereview/internal/usecase"

	"github.com/pkg/errors"
)

// ratingService implements the RatingUsecase interface. A submission upserts
// the rater's row and rewrites the store aggregate from an authoritative
// recount, all inside one transaction.
type ratingService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.RatingUsecase {
	return &ratingService{
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// SubmitRating records one rater's rating of one store. Repeating a
// submission with the same value leaves the aggregate unchanged; a changed
// value moves the sum by exactly the difference.
func (srv *ratingService) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*usecase.SubmitRatingOutput, error) {
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, domainerrors.ErrRatingOutOfRange.WrapMessage("rating must be between 1 and 5")
	}
	srv.logger.Debug("Submitting rating", "storeID", input.StoreID, "email", input.Email, "rating", input.Rating)

	var output *usecase.SubmitRatingOutput
	var previousValue int

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		// 1. The store must exist, and its row is locked so concurrent
		// submissions for the same store serialize. Without the lock two
		// raters can both read the same stored sum and the later commit
		// silently drops the earlier delta.
		store, err := storeRepo.FindByIDForUpdate(ctx, input.StoreID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound.WrapMessage("cannot rate unknown store")
			}

			return errors.Wrap(err, "failed to find store")
		}

		// 2. Upsert the rating keyed by (store, email); the previous row
		// value drives the sum adjustment below.
		rating := &entity.Rating{
			StoreID:  input.StoreID,
			Email:    input.Email,
			Username: usernameFromEmail(input.Email),
			Rating:   input.Rating,
		}
		previous, err := ratingRepo.Upsert(ctx, rating)
		if err != nil {
			return errors.Wrap(err, "failed to upsert rating")
		}

		// 3. Recount instead of incrementing, so a repeated submission or a
		// previously failed aggregate write cannot skew the count.
		count, err := ratingRepo.CountByStore(ctx, input.StoreID)
		if err != nil {
			return errors.Wrap(err, "failed to count ratings")
		}

		// 4. Move the sum by the delta between the new and prior value.
		newSum := store.TotalRatingSum + int64(input.Rating)
		if previous != nil {
			newSum -= int64(previous.Rating)
			previousValue = previous.Rating
		}

		if err := storeRepo.UpdateAggregate(ctx, input.StoreID, count, newSum); err != nil {
			return errors.Wrap(err, "failed to update store aggregate")
		}

		output = &usecase.SubmitRatingOutput{
			StoreID:          input.StoreID,
			Rating:           input.Rating,
			TotalRatingCount: count,
			TotalRatingSum:   newSum,
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Rating submission failed", "storeID", input.StoreID, "email", input.Email, "error", err.Error())

		return nil, err
	}

	// Publish after commit; a publish failure never unwinds a stored rating.
	event := &service.RatingEvent{
		RequestID:        deliverycontext.GetRequestIDFromContext(ctx),
		StoreID:          input.StoreID.String(),
		Email:            input.Email,
		Rating:           input.Rating,
		PreviousRating:   previousValue,
		TotalRatingCount: output.TotalRatingCount,
		TotalRatingSum:   output.TotalRatingSum,
	}
	if err := srv.publisher.PublishRatingEvent(ctx, event); err != nil {
		srv.logger.Error("Failed to publish rating event", "storeID", input.StoreID, "error", err)
	}
	srv.logger.Debug("Rating stored",
		"storeID", input.StoreID,
		"count", output.TotalRatingCount,
		"sum", output.TotalRatingSum)

	return output, nil
}

// ListAccountRatings returns every rating the email has submitted.
func (srv *ratingService) ListAccountRatings(ctx context.Context, email string) ([]*entity.Rating, error) {
	var ratings []*entity.Rating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		ratings, err = repoFactory.RatingRepo().ListByEmail(ctx, email)

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return ratings, nil
}

// usernameFromEmail derives the display name stored on a rating row from the
// rater's email local part.
func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}
