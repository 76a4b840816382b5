package main

import (
	"context"
	"log/slog"
	"os"

	"account/config"
	"account/internal/delivery"
	"account/internal/delivery/api"
	apimiddleware "account/internal/delivery/api/middleware"
	"account/internal/delivery/api/router/handler"
	"account/internal/delivery/contract"
	"account/internal/domain/repository"
	"account/internal/infra/auth"
	logs "account/internal/infra/log"
	"account/internal/infra/persistence/memory"
	"account/internal/infra/persistence/postgres"
	"account/internal/usecase/impl"

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
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newAccountRepository,
		),
	)
}

// newAccountRepository selects the account store from storage.driver.
func newAccountRepository(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.AccountRepository, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		logger.Warn("Using in-memory account store; accounts are lost on restart")

		return memory.NewAccountRepository(), nil
	}

	db, err := postgres.New(postgres.Params{Lifecycle: lc, Config: cfg, Logger: logger})
	if err != nil {
		return nil, err
	}

	return postgres.NewAccountRepository(db), nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			contract.NewBoundary,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
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
