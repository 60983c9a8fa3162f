package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecosnap/ecosnap/internal/application/usecase"
	"github.com/ecosnap/ecosnap/internal/domain/port"
	"github.com/ecosnap/ecosnap/internal/infrastructure/config"
	"github.com/ecosnap/ecosnap/internal/infrastructure/ml"
	"github.com/ecosnap/ecosnap/internal/presentation/rest"
	"github.com/ecosnap/ecosnap/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting ecosnap",
		"http_port", cfg.HTTPPort,
		"model_path", cfg.ModelPath,
		"environment", cfg.Environment,
	)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "ecosnap",
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "ecosnap"})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	// Load the model. A missing or corrupt artifact leaves the service up
	// without a model: health endpoints answer, predictions fail.
	predictor := loadModel(ml.NewArtifactStore(logger), cfg.ModelPath, logger)

	// Initialize use cases.
	predictUC, err := usecase.NewPredictImpact(predictor, cfg.ImpactThreshold, logger, meterProvider.Meter("ecosnap"))
	if err != nil {
		logger.Error("failed to initialize prediction use case", "error", err)
		os.Exit(1)
	}
	describeUC := usecase.NewDescribeModel(predictor)

	// Initialize HTTP handlers.
	mux := http.NewServeMux()
	rest.NewPredictionHandler(predictUC, describeUC, logger).RegisterRoutes(mux)
	rest.NewHealthHandler(predictUC.Ready, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.Chain(mux,
			rest.RequestIDMiddleware,
			rest.LoggingMiddleware(logger),
			rest.RecoverMiddleware(logger),
			rest.CORSMiddleware,
		),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down ecosnap")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("ecosnap stopped")
}

// loadModel returns the artifact at path, or nil when it cannot be loaded.
func loadModel(store port.ArtifactStore, path string, logger *slog.Logger) port.Predictor {
	predictor, err := store.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Error("model artifact not found, predictions are disabled",
				slog.String("path", path))
		} else {
			logger.Error("model artifact could not be loaded, predictions are disabled",
				slog.String("path", path), slog.String("error", err.Error()))
		}
		return nil
	}

	info := predictor.Info()
	logger.Info("model loaded",
		slog.String("path", path),
		slog.String("model_id", info.ModelID),
		slog.String("trained_at", info.TrainedAt),
		slog.Int("categories", len(info.Categories)),
	)
	return predictor
}
