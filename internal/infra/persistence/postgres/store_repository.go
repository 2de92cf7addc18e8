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
	"gorm.io/gorm/clause"
)

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	return toStoreDomain(&storeM), nil
}

// FindByIDForUpdate retrieves a store with a SELECT ... FOR UPDATE row lock.
// The lock is held until the surrounding transaction ends.
func (repo *storeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID for update")
	}

	return toStoreDomain(&storeM), nil
}

// List returns every store.
func (repo *storeRepository) List(ctx context.Context) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return toStoreDomains(storeModels), nil
}

// ListByEmail returns the stores owned by the given email.
func (repo *storeRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Order("name ASC").
		Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores by email")
	}

	return toStoreDomains(storeModels), nil
}

// Create persists a new store with zeroed aggregates.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrStoreCreationFailed.WrapMessage("missing required store information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	// Update the entity with generated values
	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// UpdateAggregate writes both aggregate columns of one store row.
func (repo *storeRepository) UpdateAggregate(ctx context.Context, id uuid.UUID, totalCount, totalSum int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_rating_count": totalCount,
			"total_rating_sum":   totalSum,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store aggregate")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// Count returns the authoritative number of store rows.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

// --- Mapper Functions ---

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:               data.ID,
		Name:             data.Name,
		Email:            data.Email,
		Address:          data.Address,
		TotalRatingCount: data.TotalRatingCount,
		TotalRatingSum:   data.TotalRatingSum,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func toStoreDomains(data []*model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(data))
	for _, storeM := range data {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:               data.ID,
		Name:             data.Name,
		Email:            data.Email,
		Address:          data.Address,
		TotalRatingCount: data.TotalRatingCount,
		TotalRatingSum:   data.TotalRatingSum,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
