package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agriprofit/agriprofit/api"
	"github.com/agriprofit/agriprofit/internal/cache"
	"github.com/agriprofit/agriprofit/internal/logger"
	"github.com/agriprofit/agriprofit/internal/model"
	"github.com/agriprofit/agriprofit/internal/predictor"
	"github.com/agriprofit/agriprofit/internal/telemetry"
	"github.com/agriprofit/agriprofit/pkg/config"
	"github.com/agriprofit/agriprofit/pkg/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	migrate := flag.Bool("migrate", false, "run database migrations")
	exportModels := flag.String("export-models", "", "write baseline model artifacts to a directory and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	if *exportModels != "" {
		artifacts := model.NewBaselineArtifacts()
		if err := artifacts.Save(*exportModels); err != nil {
			return fmt.Errorf("failed to export models: %w", err)
		}
		logger.Infof("Baseline model artifacts written to %s", *exportModels)
		return nil
	}

	db, err := database.New(cfg.Database.ToDBConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established")

	if *migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		logger.Info("Running database migrations")
		migrator := database.NewMigrator(db)
		if err := migrator.Run(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Migrations completed successfully")
		return nil
	}

	var artifacts *model.Artifacts
	if cfg.Model.Dir != "" {
		artifacts, err = model.LoadArtifacts(cfg.Model.Dir)
		if err != nil {
			return fmt.Errorf("failed to load model artifacts: %w", err)
		}
		logger.Infof("Model artifacts loaded from %s", cfg.Model.Dir)
	} else {
		artifacts = model.NewBaselineArtifacts()
		logger.Warn("No model directory configured, using baseline artifacts")
	}

	engine := predictor.New(predictor.Config{
		FailureSignalsRequired: cfg.Predictor.FailureSignalsRequired,
		DefaultCropFactor:      cfg.Predictor.DefaultCropFactor,
		MaxSuggestions:         cfg.Predictor.MaxSuggestions,
	}, artifacts)

	var cacheClient *cache.Client
	if cfg.Redis.Enabled {
		cacheClient, err = cache.NewClient(cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.CacheTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer cacheClient.Close()
		logger.Infof("Prediction cache connected at %s", cfg.Redis.Addr)
	}

	if cfg.Telemetry.Enabled {
		telemetry.StartServer(cfg.Telemetry.Port)
		logger.Infof("Metrics endpoint listening on port %d", cfg.Telemetry.Port)
	}

	server := api.NewServer(cfg.API, db, cacheClient, engine)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("API server listening on port %d", cfg.API.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
