package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/watchparty/internal/config"
	"github.com/joshua-takyi/watchparty/internal/connect"
	"github.com/joshua-takyi/watchparty/internal/container"
	"github.com/joshua-takyi/watchparty/internal/models"
	"github.com/joshua-takyi/watchparty/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local", ".env")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting watch party server", "environment", cfg.Environment)

	if cfg.UsesDefaultAdminSecret() {
		logger.Warn("ADMIN_SECRET is not set, using the built-in default; override it before deploying")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := connect.MongoDBConnect(ctx, cfg.MongoDBURI, cfg.MongoDBPassword)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	partyRepo := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
	if err := partyRepo.EnsurePartyIndexes(ctx); err != nil {
		// the sweeper still expires parties without the TTL index
		logger.Warn("Failed to ensure party indexes", "error", err)
	}

	redisClient, err := connect.RedisConnect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("Redis unavailable, poster lookups will not be cached", "error", err)
	} else if redisClient != nil {
		logger.Info("Connected to Redis successfully")
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, partyRepo, redisClient)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		appContainer.Sweeper.Start(ctx)
	}()

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	stop()

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	<-sweeperDone

	// Close database connections
	if err := connect.RedisDisconnect(redisClient); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})
	}

	return slog.New(handler)
}
