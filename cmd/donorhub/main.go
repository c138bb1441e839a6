package main

import (
	"context"
	"log/slog"
	"os"

	"donorhub/config"
	"donorhub/internal/delivery"
	"donorhub/internal/delivery/api"
	"donorhub/internal/delivery/api/middleware"
	"donorhub/internal/delivery/api/router/handler"
	"donorhub/internal/infra/auth"
	logs "donorhub/internal/infra/log"
	"donorhub/internal/infra/persistence/postgres"
	"donorhub/internal/infra/pubsub"
	"donorhub/internal/infra/storage"
	"donorhub/internal/usecase/impl"
	"donorhub/internal/util"

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
			logSettings,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			storage.NewAvatarStorage,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewDonorRepository,
			postgres.NewCompanyRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewScryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProfileHandler,
			handler.NewAvatarHandler,
			handler.NewHealthHandler,
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

// logSettings records the effective security-relevant settings once at boot.
func logSettings(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Account service configured",
		slog.String("env", cfg.Env.Env),
		slog.String("token_ttl", util.FormatDuration(cfg.Auth.TokenTTL)),
		slog.Int("password_min_length", cfg.PasswordStrength.MinLength),
		slog.String("avatar_max_size", util.FormatBytes(cfg.Avatar.MaxSizeBytes)),
		slog.Bool("auto_migrate", cfg.Migration.AutoMigrate),
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
