package main

import (
	"context"
	"log/slog"
	"os"

	"ratereview/config"
	"ratereview/internal/delivery"
	"ratereview/internal/delivery/http"
	httpmiddleware "ratereview/internal/delivery/http/middleware"
	"ratereview/internal/delivery/http/router/handler"
	deliverymiddleware "ratereview/internal/delivery/middleware"
	"ratereview/internal/domain/service"
	"ratereview/internal/infra/auth"
	"ratereview/internal/infra/confirmation"
	logs "ratereview/internal/infra/log"
	"ratereview/internal/infra/persistence/postgres"
	"ratereview/internal/infra/pubsub"
	"ratereview/internal/infra/qrcode"
	"ratereview/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
			startRegistrationSweeper,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewStoreRepository,
			postgres.NewRatingRepository,
			postgres.NewPendingRegistrationRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTService,
			auth.NewConfirmationTokenSource,
			newQRCodeService,
		),
		confirmation.Module,
		pubsub.Module,
	)
}

// newPasswordHasher creates a bcrypt hasher with the configured cost
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil {
		return auth.NewBcryptHasher(0)
	}

	return auth.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewStoreService,
			impl.NewRatingService,
			impl.NewAdminService,
			impl.NewRegistrationSweeper,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewStoreHandler,
			handler.NewRatingHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startRegistrationSweeper(ctx context.Context, lc fx.Lifecycle, sweeper *impl.RegistrationSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			sweeper.Start(ctx)

			return nil
		},
		OnStop: func(context.Context) error {
			sweeper.Stop()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
