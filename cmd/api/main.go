package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/api"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/config"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/loans"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/report"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/risk"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/satellite"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/weather"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	repo := loans.NewGormRepository(db)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Scoring model. A missing artifact is not fatal; the reference
	// endpoints keep serving and predictions return 503.
	var scorer *risk.Scorer
	artifact, err := risk.LoadArtifact(cfg.Model.ModelPath, cfg.Model.MetadataPath, logger)
	if err != nil {
		logger.Warn("Model artifact not loaded, predictions disabled",
			zap.String("model_path", cfg.Model.ModelPath),
			zap.Error(err))
	} else {
		scorer = risk.NewScorer(artifact, logger)
		logger.Info("Model loaded",
			zap.String("model_path", cfg.Model.ModelPath),
			zap.Bool("legacy_metadata", artifact.Legacy))
	}

	// Satellite snapshots: CSV cache first, static defaults as terminal
	// fallback.
	cache := satellite.NewCachedSource()
	if n, err := cache.LoadCSV(cfg.Satellite.CachePath); err != nil {
		logger.Warn("Satellite cache not loaded",
			zap.String("path", cfg.Satellite.CachePath),
			zap.Error(err))
	} else {
		logger.Info("Satellite cache loaded", zap.Int("locations", n))
	}
	source := satellite.NewChainSource(logger, cache, satellite.StaticSource{})

	// Periodic cache refresh.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Satellite.RefreshSchedule, func() {
		if n, err := cache.LoadCSV(cfg.Satellite.CachePath); err != nil {
			logger.Warn("Satellite cache refresh failed", zap.Error(err))
		} else {
			logger.Info("Satellite cache refreshed", zap.Int("locations", n))
		}
	}); err != nil {
		logger.Warn("Invalid satellite refresh schedule",
			zap.String("schedule", cfg.Satellite.RefreshSchedule),
			zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Weather provider
	wx := weather.NewOpenMeteo(&http.Client{Timeout: cfg.Weather.Timeout}, logger)
	if cfg.Weather.BaseURL != "" {
		wx = wx.WithBaseURL(cfg.Weather.BaseURL)
	}

	// Services
	generator := features.NewGenerator(wx, logger)
	loanSvc := loans.NewService(repo, logger)
	assessments := api.NewAssessmentService(source, generator, scorer, loanSvc, logger)
	handler := api.NewHandler(assessments, loanSvc, report.NewGenerator(), logger)

	router := api.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
