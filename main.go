package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/products-api/internal/app/service"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/mrops-br/products-api/internal/infrastructure/config"
	"github.com/mrops-br/products-api/internal/infrastructure/http"
	"github.com/mrops-br/products-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/products-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/products-api/internal/infrastructure/repository/mongodb"
	"github.com/mrops-br/products-api/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Products API exited with error: %v", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so they complete before main picks the exit status
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var telem *telemetry.Telemetry
	if cfg.OTLP.Enabled {
		telem, err = telemetry.NewTelemetry(cfg)
	} else {
		telem, err = telemetry.NewNoOpTelemetry(cfg, os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API", slog.String("store", cfg.Store.Driver))

	repo, closeStore, err := newRepository(&cfg.Store, tracer, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("error", err.Error()))
		return err
	}
	defer closeStore()

	productService := service.NewProductService(repo, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, telem)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case runErr = <-serverErr:
		if runErr != nil {
			logger.Error("Server error", slog.String("error", runErr.Error()))
			runErr = fmt.Errorf("http server: %w", runErr)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		if runErr == nil {
			runErr = fmt.Errorf("http server shutdown: %w", err)
		}
	}

	logger.Info("Server stopped")
	return runErr
}

// newRepository opens the configured product store. The returned func releases it.
func newRepository(cfg *config.StoreConfig, tracer trace.Tracer, logger *slog.Logger) (domain.ProductRepository, func(), error) {
	if cfg.Driver == config.StoreDriverMemory {
		return memory.NewProductRepository(tracer, logger), func() {}, nil
	}

	client, err := mongodb.Connect(context.Background(), mongodb.Config{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		ConnectTimeout: cfg.ConnectTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {
		logger.Info("Disconnecting MongoDB client")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("Error disconnecting MongoDB client", slog.String("error", err.Error()))
		}
	}

	return mongodb.NewProductRepository(client.Database(cfg.MongoDatabase), tracer, logger), closeStore, nil
}
