// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a rateable store. The aggregate pair
// TotalRatingCount/TotalRatingSum is maintained by the rating aggregate
// updater and is always recomputed from the rating rows, never incremented.
type Store struct {
	ID               uuid.UUID // The unique identifier for this store.
	Name             string    // The store's display name.
	Email            string    // The owning account's email.
	Address          string    // The store's physical address.
	TotalRatingCount int64     // Number of distinct (store, rater) rating rows.
	TotalRatingSum   int64     // Sum of all current rating values for the store.
	CreatedAt        time.Time // Timestamp of when the store was created.
	UpdatedAt        time.Time // Timestamp of the last modification to the store.
}

// AverageRating returns the derived average and whether it is defined.
// The average is undefined while the store has no ratings.
func (s *Store) AverageRating() (float64, bool) {
	if s.TotalRatingCount == 0 {
		return 0, false
	}

	return float64(s.TotalRatingSum) / float64(s.TotalRatingCount), true
}
