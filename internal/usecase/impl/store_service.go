package impl

import (
	"context"
	"log/slog"

	"ratereview/internal/domain/entity"
	domainerrors "ratereview/internal/domain/errors"
	"ratereview/internal/domain/repository"
	"ratereview/internal/domain/service"
	"ratereview/internal/domain/validation"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager repository.TransactionManager
	qrSvc     service.QRCodeService
	logger    *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(
	txManager repository.TransactionManager,
	qrSvc service.QRCodeService,
	logger *slog.Logger,
) usecase.StoreUsecase {
	return &storeService{
		txManager: txManager,
		qrSvc:     qrSvc,
		logger:    logger,
	}
}

// CreateStore validates the form and inserts a store with zeroed aggregates.
func (srv *storeService) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	srv.logger.Info("Creating store", "name", input.Name, "email", input.Email)

	if errs := validation.Store(input.Name, input.Email, input.Address); errs != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(errs.Error())
	}

	store := &entity.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.WithStack(repoFactory.StoreRepo().Create(ctx, store))
	})
	if err != nil {
		srv.logger.Error("Failed to create store", "name", input.Name, "error", err)

		return nil, domainerrors.ErrStoreCreationFailed.WrapMessage("failed to create store")
	}
	srv.logger.Info("Store created", "storeID", store.ID)

	return store, nil
}

// ListStores returns every store with its derived average.
func (srv *storeService) ListStores(ctx context.Context) ([]*usecase.StoreView, error) {
	var stores []*entity.Store

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		stores, err = repoFactory.StoreRepo().List(ctx)

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return toStoreViews(stores), nil
}

// ListOwnerStores returns the stores registered under the owner's email.
func (srv *storeService) ListOwnerStores(ctx context.Context, ownerEmail string) ([]*usecase.StoreView, error) {
	var stores []*entity.Store

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		stores, err = repoFactory.StoreRepo().ListByEmail(ctx, ownerEmail)

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return toStoreViews(stores), nil
}

// ListStoreRatings returns the individual rating rows of one store. A
// non-empty ownerEmail restricts access to that owner's stores.
func (srv *storeService) ListStoreRatings(ctx context.Context, storeID uuid.UUID, ownerEmail string) ([]*entity.Rating, error) {
	var ratings []*entity.Rating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		store, err := repoFactory.StoreRepo().FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound.WrapMessage("unknown store")
			}

			return errors.Wrap(err, "failed to find store")
		}

		if ownerEmail != "" && store.Email != ownerEmail {
			return domainerrors.ErrStoreOwnershipViolation.WrapMessage("store belongs to another owner")
		}

		ratings, err = repoFactory.RatingRepo().ListByStore(ctx, storeID)

		return errors.WithStack(err)
	})
	if err != nil {
		srv.logger.Warn("Failed to list store ratings", "storeID", storeID, "error", err.Error())

		return nil, err
	}

	return ratings, nil
}

// StoreQR renders a PNG QR code pointing at the store's review page. The
// same ownership rule as ListStoreRatings applies.
func (srv *storeService) StoreQR(ctx context.Context, storeID uuid.UUID, ownerEmail string) ([]byte, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		store, err := repoFactory.StoreRepo().FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound.WrapMessage("unknown store")
			}

			return errors.Wrap(err, "failed to find store")
		}

		if ownerEmail != "" && store.Email != ownerEmail {
			return domainerrors.ErrStoreOwnershipViolation.WrapMessage("store belongs to another owner")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	png, err := srv.qrSvc.GenerateStoreQR(storeID)
	if err != nil {
		srv.logger.Error("Failed to generate store QR code", "storeID", storeID, "error", err)

		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// toStoreViews attaches the derived average to each store row.
func toStoreViews(stores []*entity.Store) []*usecase.StoreView {
	views := make([]*usecase.StoreView, 0, len(stores))
	for _, store := range stores {
		avg, ok := store.AverageRating()
		views = append(views, &usecase.StoreView{
			Store:         store,
			AverageRating: avg,
			HasRatings:    ok,
		})
	}

	return views
}
