package postgres

import (
	"context"

	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	"ratereview/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ratingRepository implements the repository.RatingRepository interface.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

// Upsert inserts or replaces the rating keyed by (StoreID, Email) and returns
// the previous rating for that key, or nil if none existed. Runs inside the
// caller's transaction, so the read-then-write pair is atomic.
func (repo *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	var existingM model.RatingModel

	err := repo.db.WithContext(ctx).
		Where("store_id = ? AND email = ?", rating.StoreID, rating.Email).
		First(&existingM).Error

	switch {
	case err == nil:
		// Overwrite the existing row; CreatedAt keeps the first submission time.
		previous := toRatingDomain(&existingM)

		existingM.Username = rating.Username
		existingM.Rating = rating.Rating
		if err := repo.db.WithContext(ctx).Save(&existingM).Error; err != nil {
			if isCheckConstraintViolation(err) {
				return nil, domainerrors.ErrRatingOutOfRange.WrapMessage("rating value rejected by database")
			}

			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update rating")
		}

		rating.ID = existingM.ID
		rating.CreatedAt = existingM.CreatedAt
		rating.UpdatedAt = existingM.UpdatedAt

		return previous, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		ratingM := fromRatingDomain(rating)
		if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				// A concurrent submission for the same key won the insert.
				return nil, domainerrors.ErrConflict.WrapMessage("rating was submitted concurrently")
			}
			if isCheckConstraintViolation(err) {
				return nil, domainerrors.ErrRatingOutOfRange.WrapMessage("rating value rejected by database")
			}
			if isForeignKeyConstraintViolation(err) {
				return nil, domainerrors.ErrStoreNotFound.WrapMessage("invalid store reference")
			}

			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
		}

		rating.ID = ratingM.ID
		rating.CreatedAt = ratingM.CreatedAt
		rating.UpdatedAt = ratingM.UpdatedAt

		return nil, nil

	default:
		return nil, errors.Wrap(err, "failed to look up existing rating")
	}
}

// FindByStoreAndEmail retrieves one rater's current rating of one store.
func (repo *ratingRepository) FindByStoreAndEmail(ctx context.Context, storeID uuid.UUID, email string) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ? AND email = ?", storeID, email).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by store and email")
	}

	return toRatingDomain(&ratingM), nil
}

// ListByStore returns every rating row for a store, newest overwrite first.
func (repo *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("updated_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	return toRatingDomains(ratingModels), nil
}

// ListByEmail returns every rating row submitted by an email.
func (repo *ratingRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Order("updated_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by email")
	}

	return toRatingDomains(ratingModels), nil
}

// CountByStore returns the authoritative rating row count for a store.
func (repo *ratingRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings by store")
	}

	return count, nil
}

// Count returns the total number of rating rows.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

// --- Mapper Functions ---

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		StoreID:   data.StoreID,
		Email:     data.Email,
		Username:  data.Username,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toRatingDomains(data []*model.RatingModel) []*entity.Rating {
	ratings := make([]*entity.Rating, 0, len(data))
	for _, ratingM := range data {
		ratings = append(ratings, toRatingDomain(ratingM))
	}

	return ratings
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:        data.ID,
		StoreID:   data.StoreID,
		Email:     data.Email,
		Username:  data.Username,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
