package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"jobboard_backend/database"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/routes"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/webhook"
	"jobboard_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole service: config, database, storage, the webhook
// worker and the HTTP server. It blocks until SIGINT/SIGTERM.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey; the repositories depend on that.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, worker := SetupRouter(db, store)
	go worker.Start(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "addr", addr, "env", cfg.Server.Env)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		return nil
	}
}

// SetupRouter wires the service graph and returns the gin engine plus the
// webhook worker, ready to start.
func SetupRouter(db *gorm.DB, store storage.Storage) (*gin.Engine, *workers.WebhookWorker) {
	cfg := config.GetConfig()

	container := services.NewServiceContainer(db, store)

	sender := webhook.NewHTTPSender(time.Duration(cfg.Webhook.TimeoutSec) * time.Second)
	worker := workers.NewWebhookWorker(
		repositories.NewWebhookDeliveryRepository(db),
		sender,
		cfg.Webhook.URL,
		cfg.Webhook.MaxAttempts,
		time.Duration(cfg.Webhook.IntervalSec)*time.Second,
		time.Duration(cfg.Webhook.TimeoutSec)*time.Second,
	)
	container.Applications.SetNotifier(worker.Kick)

	appHandlers := handlers.NewAppHandlers(container)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(router, appHandlers)

	return router, worker
}
