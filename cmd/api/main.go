// Package main is the entry point for the Arquitetura finance API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/arquitetura-app/backend/config"
	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/infra/db"
	"github.com/arquitetura-app/backend/internal/infra/dependency"
	"github.com/arquitetura-app/backend/internal/infra/lock"
	"github.com/arquitetura-app/backend/internal/integration/alert"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/controller"
	"github.com/arquitetura-app/backend/internal/integration/events"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Arquitetura finance API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Per-project lock
	locker, lockHealth, closeLocker, err := newLocker(cfg)
	if err != nil {
		slog.Error("Failed to initialize project lock", "error", err)
		os.Exit(1)
	}
	defer closeLocker()

	// Timeline fan-out is optional
	var publisher adapter.EventPublisher
	if cfg.Events.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey)
		if err != nil {
			slog.Warn("AMQP unavailable, timeline events will not be published", "error", err)
		} else {
			publisher = amqpPublisher
			defer func() {
				if err := amqpPublisher.Close(); err != nil {
					slog.Error("Failed to close AMQP publisher", "error", err)
				}
			}()
		}
	}

	// Operator alert delivery
	var sender adapter.AlertSender = alert.LogSender{}
	switch {
	case cfg.Alert.ResendAPIKey != "" && cfg.Alert.ResendBaseURL != "":
		resendClient, err := alert.NewResendClientWithBaseURL(
			cfg.Alert.ResendAPIKey, cfg.Alert.FromName, cfg.Alert.FromEmail, cfg.Alert.ResendBaseURL,
		)
		if err != nil {
			slog.Error("Failed to configure Resend", "error", err)
			os.Exit(1)
		}
		sender = resendClient
	case cfg.Alert.ResendAPIKey != "":
		sender = alert.NewResendClient(cfg.Alert.ResendAPIKey, cfg.Alert.FromName, cfg.Alert.FromEmail)
	default:
		slog.Warn("RESEND_API_KEY not set, operator alerts will only be logged")
	}
	if cfg.Alert.OperatorEmail == "" {
		slog.Warn("ALERT_OPERATOR_EMAIL not set, operator alerts are disabled")
	}

	var healthChecks []controller.HealthCheck
	if lockHealth != nil {
		healthChecks = append(healthChecks, controller.HealthCheck{Name: "redis", Probe: lockHealth})
	}

	injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
		DB:           database.DB(),
		Locker:       locker,
		Publisher:    publisher,
		AlertSender:  sender,
		Clock:        adapter.SystemClock{},
		HealthChecks: healthChecks,
	})
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Alert.WorkerEnabled {
		go injector.AlertWorker.Start(workerCtx)
	}

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly",
		"audit_write_failures", injector.Recorder.Failures(),
	)
}

// newLocker builds the project lock selected by LOCK_BACKEND. The returned
// probe is nil for the in-process lock.
func newLocker(cfg *config.Config) (adapter.ProjectLocker, func(context.Context) error, func(), error) {
	if cfg.Lock.Backend != "redis" {
		return lock.NewMemoryLocker(cfg.Lock.WaitLimit), nil, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	slog.Info("Using redis project lock", "prefix", cfg.Lock.KeyPrefix)
	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	probe := func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	return lock.NewRedisLocker(client, cfg.Lock.KeyPrefix, cfg.Lock.TTL, cfg.Lock.WaitLimit), probe, closeFn, nil
}
