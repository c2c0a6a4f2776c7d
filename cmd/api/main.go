package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gabbyferm/savory/backend/config"
	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/logging"
	"github.com/gabbyferm/savory/backend/internal/server"
	"github.com/gabbyferm/savory/backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.LogLevel)
	gin.SetMode(cfg.Environment.GinMode())

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	seeded, err := database.SeedReferenceData(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("reference data ready", "categories_added", seeded.Categories, "ingredients_added", seeded.Ingredients)

	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		logger.Warn("redis is not configured, rate limits are kept per instance")
	}

	handler := server.NewHandler(cfg, server.Dependencies{
		DB:     db,
		Redis:  redisClient,
		Images: images,
	})
	srv := server.New(cfg, handler, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
