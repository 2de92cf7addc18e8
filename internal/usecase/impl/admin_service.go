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

	"github.com/pkg/errors"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// Stats returns the dashboard headline totals. The account figure sums the
// three role collections; every number is a live count, not a cached one.
func (srv *adminService) Stats(ctx context.Context) (*usecase.StatsOutput, error) {
	output := &usecase.StatsOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		for _, role := range entity.AllRoles {
			count, err := accountRepo.CountByRole(ctx, role)
			if err != nil {
				return errors.Wrapf(err, "failed to count %s accounts", role.Collection())
			}
			output.TotalAccounts += count
		}

		storeCount, err := repoFactory.StoreRepo().Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count stores")
		}
		output.TotalStores = storeCount

		ratingCount, err := repoFactory.RatingRepo().Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count ratings")
		}
		output.TotalRatings = ratingCount

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to collect stats", "error", err)

		return nil, err
	}

	return output, nil
}

// ListAccounts returns every account across the three role collections.
func (srv *adminService) ListAccounts(ctx context.Context) ([]*usecase.AccountView, error) {
	var views []*usecase.AccountView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		for _, role := range entity.AllRoles {
			accounts, err := accountRepo.ListByRole(ctx, role)
			if err != nil {
				return errors.Wrapf(err, "failed to list %s", role.Collection())
			}
			for _, account := range accounts {
				views = append(views, &usecase.AccountView{
					Account: account,
					Role:    role.String(),
				})
			}
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to list accounts", "error", err)

		return nil, err
	}

	return views, nil
}

// CreateAccount inserts an account directly, bypassing the confirmation
// flow. The same form rules as self-registration apply.
func (srv *adminService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	role, err := parseRole(input.Role)
	if err != nil {
		return nil, err
	}
	srv.logger.Info("Admin creating account", "email", input.Email, "role", role.String())

	if errs := validation.Registration(input.Name, input.Email, input.Address, input.Password); errs != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(errs.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	account := &entity.Account{
		Role:         role,
		Email:        input.Email,
		Name:         input.Name,
		Address:      input.Address,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, err := accountRepo.FindByRoleAndEmail(ctx, role, input.Email)
		if err == nil {
			return domainerrors.ErrAlreadyRegistered.WrapMessage("account already exists")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check existing account")
		}

		return errors.WithStack(accountRepo.Create(ctx, account))
	})
	if err != nil {
		srv.logger.Warn("Admin account creation failed", "email", input.Email, "error", err.Error())

		return nil, err
	}
	srv.logger.Info("Account created by admin", "accountID", account.ID, "role", role.String())

	return account, nil
}
