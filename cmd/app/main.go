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

	"ordering/cmd"
	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/observability"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	tp, shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		ServiceName:    configs.ServiceName,
		ServiceVersion: configs.ServiceVersion,
		Endpoint:       configs.OtelExporterEndpoint,
		Insecure:       configs.OtelExporterInsecure,
	})
	if err != nil {
		log.Fatalf("Error setting up tracing: %v", err)
	}

	gormDB, err := postgres.Open(ctx, configs.Postgres())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	publisher, closePublisher := newPublisher(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, tp, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := httpadapter.NewEcho(ctx, app.CreateServer())
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	if err = closePublisher(); err != nil {
		logger.Error("Kafka producer close failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", "error", err)
	}
}

// newPublisher falls back to a no-op publisher when no brokers are configured.
func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.OrderEventPublisher, func() error) {
	if len(configs.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, order events are not published")
		return kafka.NoopPublisher{}, func() error { return nil }
	}

	producer, err := kafka.NewSyncProducer(configs.KafkaBrokers)
	if err != nil {
		log.Fatalf("Error creating Kafka producer: %v", err)
	}
	publisher := kafka.NewPublisher(producer, configs.KafkaOrderEventsTopic, logger)
	return publisher, publisher.Close
}
