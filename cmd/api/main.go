package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/mealmerge/backend/config"
	"github.com/pageza/mealmerge/backend/internal/database"
	"github.com/pageza/mealmerge/backend/internal/logging"
	"github.com/pageza/mealmerge/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to the datastore. A missing URL or failed connection disables
	// the datastore features; the API still serves MealDB-only results.
	var db *database.DB
	if cfg.HasDatastore() {
		db, err = database.New(cfg)
		if err != nil {
			logger.Error("database connection failed, datastore features disabled", zap.Error(err))
			db = nil
		} else {
			logger.Info("database connection successful")
		}
	} else {
		logger.Warn("no database URL found, datastore features disabled")
	}

	// Optional redis for the MealDB response cache.
	var redisClient *redis.Client
	if cfg.HasRedis() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, MealDB cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// Create and start server
	srv := server.New(cfg, db, redisClient, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
