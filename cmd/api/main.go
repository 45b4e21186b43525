package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/straye-as/concrete-calc/docs"
	"github.com/straye-as/concrete-calc/internal/auth"
	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/content"
	"github.com/straye-as/concrete-calc/internal/database"
	"github.com/straye-as/concrete-calc/internal/http/handler"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	"github.com/straye-as/concrete-calc/internal/http/router"
	"github.com/straye-as/concrete-calc/internal/jobs"
	"github.com/straye-as/concrete-calc/internal/logger"
	"github.com/straye-as/concrete-calc/internal/repository"
	"github.com/straye-as/concrete-calc/internal/service"
	"github.com/straye-as/concrete-calc/internal/storage"
	"go.uber.org/zap"
)

// @title Concrete Calc API
// @version 1.0
// @description Concrete volume calculators, shareable estimates and calculator content

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT issued by POST /admin/token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Admin API key

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	docs.SwaggerInfo.Host = swaggerHost(cfg)

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	printStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	store, err := content.New()
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	// Repositories and services
	estimateRepo := repository.NewEstimateRepository(db)

	calculatorService := service.NewCalculatorService(store, cfg.Site, log)
	contentService := service.NewContentService(store, cfg.Site, log)
	estimateService := service.NewEstimateService(estimateRepo, calculatorService, printStorage, cfg.Estimates, cfg.Site, log)

	// Admin auth. Bearer tokens are optional; without a signing key only
	// the API key is accepted.
	tokens, err := auth.NewTokenIssuer(&cfg.Auth)
	if err != nil {
		if !errors.Is(err, auth.ErrTokensDisabled) {
			return fmt.Errorf("failed to configure tokens: %w", err)
		}
		log.Warn("JWT signing key not configured, bearer tokens disabled")
	}
	if cfg.Auth.APIKey == "" {
		log.Warn("Admin API key not configured, admin endpoints are unreachable")
	}

	authMiddleware := auth.NewMiddleware(cfg.Auth.APIKey, tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		handler.NewHealthHandler(db, printStorage, log),
		handler.NewCalculatorHandler(calculatorService, log),
		handler.NewEstimateHandler(estimateService, log),
		handler.NewContentHandler(contentService, log),
		handler.NewAdminHandler(estimateService, tokens, log),
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterEstimatePurgeJob(
			scheduler,
			estimateService,
			log,
			cfg.Jobs.EstimatePurgeCron,
			cfg.Jobs.EstimatePurgeTimeoutDuration(),
			true, // clear anything that expired while we were down
		); err != nil {
			return fmt.Errorf("failed to register estimate purge job: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("cron_expr", cfg.Jobs.EstimatePurgeCron),
			zap.Duration("timeout", cfg.Jobs.EstimatePurgeTimeoutDuration()),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      http.TimeoutHandler(rt.Setup(), cfg.Server.RequestTimeoutDuration(), "request timed out"),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// swaggerHost points the docs at the configured site outside development
func swaggerHost(cfg *config.Config) string {
	switch cfg.App.Environment {
	case "staging", "production":
		if u, err := url.Parse(cfg.Site.BaseURL); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return fmt.Sprintf("localhost:%d", cfg.App.Port)
}
