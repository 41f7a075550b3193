package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/delivery"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/erp"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/fulfillment"
	httpserver "github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/pricing"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	port := getEnv("PORT", "8087")

	logger := log.New(os.Stdout, "[fulfillment-service] ", log.LstdFlags|log.Lshortfile)

	dsn := db.GetDSN()
	if err := db.RunMigrations(dsn, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen()
	defer database.Close()
	cartRepo := cart.NewRepository(database)

	rabbitConn := events.MustDialRabbit()
	defer rabbitConn.Close()

	sequenceRepo := events.NewSequenceRepository(database)
	notifier, err := events.NewPublisher(rabbitConn, sequenceRepo)
	if err != nil {
		logger.Fatalf("create notification publisher: %v", err)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	deliveryCenter := delivery.NewClient(getEnv("DELIVERY_CENTER_URL", "http://delivery-center:8085"), httpClient)
	sap := erp.NewSapClient(getEnv("SAP_ADAPTER_URL", "http://sap-adapter:8086"), httpClient)

	batch := fulfillment.NewBatch(cartRepo, deliveryCenter, notifier, sap, logger)
	calculator := pricing.NewCalculator(pricing.DefaultRules())

	mux := httpserver.NewRouter(batch, calculator)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := getInterval(logger)
	go runScheduler(ctx, batch, interval, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("fulfillment-service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := notifier.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}

// runScheduler runs the batch once at startup and then on every tick until
// the context is cancelled.
func runScheduler(ctx context.Context, batch *fulfillment.Batch, interval time.Duration, logger *log.Logger) {
	run := func() {
		summary, err := batch.ProcessAll(ctx)
		if err != nil {
			logger.Printf("batch run failed: %v", err)
			return
		}
		logger.Printf("batch run done: %d processed, %d failed", summary.Processed, len(summary.Failed))
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func getInterval(logger *log.Logger) time.Duration {
	raw := getEnv("FULFILLMENT_INTERVAL", "1h")
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		logger.Printf("invalid FULFILLMENT_INTERVAL %q, using 1h", raw)
		return time.Hour
	}
	return interval
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
