package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/cartservice/pkg/app"
	"github.com/ghuser/cartservice/pkg/cache"
	"github.com/ghuser/cartservice/pkg/config"
	"github.com/ghuser/cartservice/pkg/events"
	"github.com/ghuser/cartservice/pkg/logger"
	"github.com/ghuser/cartservice/pkg/telemetry"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
	"github.com/ghuser/cartservice/services/cart/application/subscribers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	// Redis is released after the bus in shutdown, since in-flight handlers
	// still read and write carts while the bus drains.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("redis connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		_ = redisClient.Close()
		os.Exit(1) //nolint:gocritic
	}

	appConfig := &app.Application{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	subCtx, stop := context.WithCancel(ctx)
	if err := registerSubscribers(subCtx, appConfig); err != nil {
		stop()
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	if err := shutdown(stop, eventBus, redisClient); err != nil {
		log.Error("worker shutdown incomplete", "error", err)
	}
	log.Info("worker stopped")
}

// shutdown stops message delivery, waits for in-flight handlers through
// bus.Close (up to 30s) and only then closes the stores those handlers use.
func shutdown(stop context.CancelFunc, bus io.Closer, stores ...io.Closer) error {
	stop()

	var errs []error
	if err := bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close event bus: %w", err))
	}
	for _, s := range stores {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	svcs := appsvcs.New(a)
	catalog := subscribers.NewCatalogSelectedHandler(svcs.Cart, svcs.Emitter, a.Logger)

	topic := a.Config.TopicCatalogSelected
	errCh, err := a.EventBus.Subscribe(ctx, topic, catalog.HandleMessage)
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", topic,
				"error", err,
			)
			telemetry.CaptureError(ctx, err, map[string]string{"topic": topic})
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{topic})
	return nil
}
