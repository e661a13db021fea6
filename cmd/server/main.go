package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/ideascore/internal/api"
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/middleware"
	"github.com/ajharbinger/ideascore/internal/pipeline"
	"github.com/ajharbinger/ideascore/internal/providers"
	"github.com/ajharbinger/ideascore/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()
	appLogger := logger.New(cfg.Environment)

	for name, ok := range pipeline.CredentialStatus(cfg) {
		if !ok {
			appLogger.Warn("provider credential missing, its agent will fall back to neutral signals", "provider", name)
		}
	}

	// One pooled client for every provider, released on shutdown
	httpClient := providers.NewHTTPClient(cfg.HTTP)
	defer httpClient.Close()

	health := providers.NewHealthRegistry()
	evaluator := pipeline.NewEvaluator(
		pipeline.NewProviders(cfg, httpClient, health, appLogger),
		cfg.AgentTimeout,
		appLogger,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.LoggingMiddleware(appLogger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(middleware.DefaultRequestsPerMinute))
	}
	r.Use(gin.Recovery())

	api.SetupRoutes(r,
		api.NewEvaluationHandler(evaluator, appLogger),
		api.NewHealthHandler(health, pipeline.CredentialStatus(cfg)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to start server", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("shutdown signal received")

	// In-flight evaluations may run up to one agent timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.AgentTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("graceful shutdown failed", err)
	}

	appLogger.Info("server stopped")
}
