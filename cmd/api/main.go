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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/acquitrack/internal/app"
	"github.com/MrJamesThe3rd/acquitrack/internal/config"
	"github.com/MrJamesThe3rd/acquitrack/internal/events"
	acqhttp "github.com/MrJamesThe3rd/acquitrack/internal/http"
	prhttp "github.com/MrJamesThe3rd/acquitrack/internal/http/purchaserequest"
	reporthttp "github.com/MrJamesThe3rd/acquitrack/internal/http/report"
	vendorhttp "github.com/MrJamesThe3rd/acquitrack/internal/http/vendor"
	"github.com/MrJamesThe3rd/acquitrack/internal/logger"
	"github.com/MrJamesThe3rd/acquitrack/internal/metrics"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/redisx"
	"github.com/MrJamesThe3rd/acquitrack/internal/seed"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		opts    []purchaserequest.Option
		routing = acqhttp.Options{
			CORSOrigins: cfg.Server.CORSOrigins,
			JWTSecret:   cfg.Auth.JWTSecret,
			DefaultUser: seed.Actor(cfg.Auth.DefaultUserID),
		}
	)

	if cfg.Metrics.Enabled {
		rec := metrics.NewRecorder()
		routing.Metrics = rec
		opts = append(opts, purchaserequest.WithMetrics(rec))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher := events.NewPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.App.Name, cfg.Kafka.Buffer)
		publisher.Start()
		defer publisher.Close()

		opts = append(opts, purchaserequest.WithNotifier(publisher))
		slog.Info("publishing audit events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisx.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()

		routing.Idempotency = redisx.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	}

	services, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer services.Close()

	var (
		purchaseRequestsH = prhttp.NewHandler(services.PurchaseRequests)
		vendorsH          = vendorhttp.NewHandler(services.Vendors, services.Importer)
		reportsH          = reporthttp.NewHandler(services.Reports)
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      acqhttp.New(purchaseRequestsH, vendorsH, reportsH, routing),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "store", cfg.Store.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
