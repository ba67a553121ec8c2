package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"octofit/config"
	"octofit/middleware"
	"octofit/routes"
	"octofit/utils"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := utils.InitLogger(config.AppConfig.LogLevel, config.AppConfig.LogFormat); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	flushSentry, err := utils.InitSentry(config.AppConfig.SentryDSN, config.AppConfig.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize Sentry: %v", err)
	}
	defer flushSentry()

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := config.CloseDB(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateLimitStore := middleware.NewRateLimitStorage(config.AppConfig.Redis)
	if redisStore, ok := rateLimitStore.(*middleware.RedisStorage); ok {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			log.WithError(err).Warn("Redis unreachable, falling back to in-memory rate limiting")
			rateLimitStore = nil
		}
		cancel()
		defer redisStore.Close()
	}

	app := routes.NewApp(config.DB, routes.AppOptions{
		BaseURL:        config.AppConfig.APIBaseURL,
		RequestTimeout: config.AppConfig.RequestTimeout,
		CORSOrigins:    config.AppConfig.CORSOrigins,
		RateLimitMax:   config.AppConfig.RateLimitMax,
		RateLimitStore: rateLimitStore,
		AccessLog:      true,
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Warn("Server shutdown did not complete cleanly")
		}
	}()

	// Start server
	log.Infof("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		log.Errorf("Server stopped: %v", err)
	}
}
