package usecase

import (
	"context"

	"ratereview/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitRatingInput defines a rating submission. Email identifies the rater
// and comes from the authenticated session, not the request body.
type SubmitRatingInput struct {
	StoreID uuid.UUID `json:"store_id"`
	Email   string    `json:"email"`
	Rating  int       `json:"rating"`
}

// SubmitRatingOutput returns the aggregate the submission produced.
type SubmitRatingOutput struct {
	StoreID          uuid.UUID `json:"store_id"`
	Rating           int       `json:"rating"`
	TotalRatingCount int64     `json:"total_rating_count"`
	TotalRatingSum   int64     `json:"total_rating_sum"`
}

// RatingUsecase defines the rating aggregate updater operations.
type RatingUsecase interface {
	// SubmitRating upserts the rater's rating and recomputes the store
	// aggregate inside one transaction.
	SubmitRating(ctx context.Context, input *SubmitRatingInput) (*SubmitRatingOutput, error)

	// ListAccountRatings returns every rating the email has submitted.
	ListAccountRatings(ctx context.Context, email string) ([]*entity.Rating, error)
}
