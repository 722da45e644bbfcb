package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"productselector/internal/config"
	"productselector/internal/database"
	"productselector/internal/handlers"
	"productselector/internal/logger"
	"productselector/internal/repositories"
	"productselector/internal/server"
	"productselector/internal/services"
	"productselector/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// --- Database ---
	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	// --- RabbitMQ ---
	publisher, closePublisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo, recipeRepo, publisher, log)
	recipeService := services.NewRecipeService(recipeRepo, productRepo, publisher, log)
	userService := services.NewUserService(userRepo, publisher, log)

	// --- Fiber App ---
	app := server.New(log, server.Options{
		Ping:      pingDB(db),
		RateLimit: cfg.RateLimitRPS,
		RateBurst: cfg.RateLimitBurst,
	},
		handlers.NewProductHandler(productService),
		handlers.NewRecipeHandler(recipeService),
		handlers.NewUserHandler(userService),
	)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.Shutdown(); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
	return nil
}

// newPublisher connects to RabbitMQ when a URL is configured. Without one,
// entity events are disabled and the returned publisher is nil.
func newPublisher(cfg *config.Config, log *zap.Logger) (services.EventPublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		log.Info("RabbitMQ URL not set, entity events are disabled")
		return nil, func() {}, nil
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
	}
	log.Info("Publishing entity events", zap.String("exchange", cfg.RabbitMQExchange))

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("Failed to close RabbitMQ client", zap.Error(err))
		}
	}
	return client, closeFn, nil
}

func pingDB(db *gorm.DB) server.PingFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("Failed to close database", zap.Error(err))
	}
}
