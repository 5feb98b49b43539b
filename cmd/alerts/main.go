package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/openretail/pos/internal/alerts"
	"github.com/openretail/pos/internal/messaging"
	"github.com/openretail/pos/internal/products"
	"github.com/openretail/pos/internal/telemetry"
)

const defaultLowStockThreshold = 5

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	threshold := defaultLowStockThreshold
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			logger.Error("invalid LOW_STOCK_THRESHOLD", "value", v)
			os.Exit(1)
		}
		threshold = parsed
	}

	db, err := telemetry.Connect("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	brokers := strings.Split(kafkaBrokers, ",")
	consumer := messaging.NewConsumer(brokers, "sale.recorded", "low-stock-alerts")
	defer func() { _ = consumer.Close() }()

	handler := alerts.NewHandler(products.NewProductRepository(db), threshold, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting low stock alert worker", "brokers", brokers, "threshold", threshold)

	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		if ctx.Err() == context.Canceled {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
