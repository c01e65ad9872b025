package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dylankatchen/achieveup-badges/internal/client"
	"github.com/dylankatchen/achieveup-badges/internal/config"
	"github.com/dylankatchen/achieveup-badges/internal/handlers"
	"github.com/dylankatchen/achieveup-badges/internal/middleware"
	"github.com/dylankatchen/achieveup-badges/internal/routes"
	"github.com/dylankatchen/achieveup-badges/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()

	env := config.AppConfig.Env
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting AchieveUp Badge Service...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Upstream AchieveUp backend client
	backend := client.New(
		config.AppConfig.BackendBaseURL,
		time.Duration(config.AppConfig.BackendTimeoutSeconds)*time.Second,
	)

	badgeHandler := handlers.NewBadgeHandler(backend)
	healthHandler := handlers.NewHealthHandler(backend)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.GeneralRateLimit())

	api := r.Group("/api")
	{
		routes.RegisterBadgeRoutes(api, badgeHandler)
	}

	r.GET("/health", healthHandler.GetHealth)

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
