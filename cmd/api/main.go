package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/menyesha/complaint-service/internal/api/http"
	"github.com/menyesha/complaint-service/internal/api/http/handlers"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/config"
	"github.com/menyesha/complaint-service/internal/events"
	"github.com/menyesha/complaint-service/internal/observability"
	"github.com/menyesha/complaint-service/internal/persistence"
	"github.com/menyesha/complaint-service/internal/repository"
	"github.com/menyesha/complaint-service/internal/service"
	"github.com/menyesha/complaint-service/internal/storage"
	"github.com/menyesha/complaint-service/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store, err := storage.NewStore(cfg.Uploads)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	directoryService := service.NewDirectoryService(*cfg, userRepo, dispatcher)
	complaintService := service.NewComplaintService(complaintRepo, dispatcher)
	dashboardService := service.NewDashboardService(complaintRepo, directoryService)
	notificationService := service.NewNotificationService(dispatcher, logger, redis, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Uploads.MaxEvidenceBytes) * (cfg.Uploads.MaxEvidenceFiles + 1),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.CORSOrigins, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, store),
		Complaints:     handlers.NewComplaintsHandler(complaintService, store),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Admin:          handlers.NewAdminHandler(directoryService, dashboardService),
		Institution:    handlers.NewInstitutionHandler(dashboardService, complaintService),
		Sector:         handlers.NewSectorHandler(dashboardService, complaintService),
		AuthMiddleware: authMiddleware,
		UploadsDir:     store.BaseDir(),
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
