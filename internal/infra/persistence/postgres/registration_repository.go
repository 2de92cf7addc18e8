package postgres

import (
	"context"
	"time"

	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	"ratereview/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// pendingRegistrationRepository implements the repository.PendingRegistrationRepository interface.
type pendingRegistrationRepository struct {
	db *gorm.DB
}

// NewPendingRegistrationRepository is the constructor for pendingRegistrationRepository.
func NewPendingRegistrationRepository(db *gorm.DB) repository.PendingRegistrationRepository {
	return &pendingRegistrationRepository{
		db: db,
	}
}

// FindByToken retrieves the pending registration for an opaque token.
func (repo *pendingRegistrationRepository) FindByToken(ctx context.Context, token string) (*entity.PendingRegistration, error) {
	var pendingM model.PendingRegistrationModel

	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&pendingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPendingRegistrationNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending registration by token")
	}

	return toPendingRegistrationDomain(&pendingM), nil
}

// Replace removes any pending registration for the same (role, email) pair
// and persists the given one, so only the latest confirmation link works.
func (repo *pendingRegistrationRepository) Replace(ctx context.Context, pending *entity.PendingRegistration) error {
	if err := repo.db.WithContext(ctx).
		Where("role = ? AND email = ?", pending.Role.String(), pending.Email).
		Delete(&model.PendingRegistrationModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear previous pending registration")
	}

	pendingM := fromPendingRegistrationDomain(pending)
	if err := repo.db.WithContext(ctx).Create(pendingM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrConfirmationInvalid.WrapMessage("missing required registration information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create pending registration")
	}

	// Update the entity with generated values
	pending.ID = pendingM.ID
	pending.CreatedAt = pendingM.CreatedAt

	return nil
}

// Delete removes a pending registration by token. Deleting an already removed
// row is not an error, which makes token consumption idempotent here; the
// replay protection lives in FindByToken failing afterwards.
func (repo *pendingRegistrationRepository) Delete(ctx context.Context, token string) error {
	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.PendingRegistrationModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete pending registration")
	}

	return nil
}

// DeleteExpired removes rows past their deadline and reports how many were dropped.
func (repo *pendingRegistrationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.PendingRegistrationModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired pending registrations")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toPendingRegistrationDomain converts a GORM model to a domain entity.
func toPendingRegistrationDomain(data *model.PendingRegistrationModel) *entity.PendingRegistration {
	if data == nil {
		return nil
	}

	return &entity.PendingRegistration{
		ID:           data.ID,
		Token:        data.Token,
		Role:         entity.Role(data.Role),
		Email:        data.Email,
		Name:         data.Name,
		Address:      data.Address,
		PasswordHash: data.PasswordHash,
		ExpiresAt:    data.ExpiresAt,
		CreatedAt:    data.CreatedAt,
	}
}

// fromPendingRegistrationDomain converts a domain entity to a GORM model.
func fromPendingRegistrationDomain(data *entity.PendingRegistration) *model.PendingRegistrationModel {
	if data == nil {
		return nil
	}

	return &model.PendingRegistrationModel{
		ID:           data.ID,
		Token:        data.Token,
		Role:         data.Role.String(),
		Email:        data.Email,
		Name:         data.Name,
		Address:      data.Address,
		PasswordHash: data.PasswordHash,
		ExpiresAt:    data.ExpiresAt,
		CreatedAt:    data.CreatedAt,
	}
}
