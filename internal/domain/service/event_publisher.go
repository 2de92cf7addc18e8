package service

import (
	"context"
)

// RatingEvent describes a committed rating submission together with the
// aggregate it produced, for downstream consumers (analytics, owner feeds).
type RatingEvent struct {
	RequestID        string `json:"request_id,omitempty"` // For distributed tracing
	StoreID          string `json:"store_id"`
	Email            string `json:"email"`
	Rating           int    `json:"rating"`
	PreviousRating   int    `json:"previous_rating,omitempty"` // 0 when this was the rater's first rating
	TotalRatingCount int64  `json:"total_rating_count"`
	TotalRatingSum   int64  `json:"total_rating_sum"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishRatingEvent publishes a rating event for async processing.
	PublishRatingEvent(ctx context.Context, event *RatingEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
