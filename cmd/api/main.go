package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/family-service/internal/api/http"
	"github.com/spec-kit/family-service/internal/api/http/handlers"
	"github.com/spec-kit/family-service/internal/auth"
	"github.com/spec-kit/family-service/internal/config"
	"github.com/spec-kit/family-service/internal/i18n"
	"github.com/spec-kit/family-service/internal/observability"
	"github.com/spec-kit/family-service/internal/persistence"
	"github.com/spec-kit/family-service/internal/repository"
	"github.com/spec-kit/family-service/internal/service"
	"github.com/spec-kit/family-service/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	translator, err := i18n.New()
	if err != nil {
		logger.Fatal("failed to load locales", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	familyRepo := repository.NewFamilyRepository(pool)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	familyService := service.NewFamilyService(familyRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	validate := validation.New()

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, translator, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(authService, validate),
		Family:         handlers.NewFamilyHandler(familyService, validate, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
