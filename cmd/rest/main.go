package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"notes-admin-be/internal/bootstrap"
	"notes-admin-be/internal/config"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/server"
	"notes-admin-be/internal/tracer"
	"notes-admin-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 1. Load Configuration
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(ctx, cfg.Otel)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.Connect(ctx, database.Options{
		DSN:             cfg.Database.Connection,
		ConnectAttempts: cfg.Database.ConnectAttempts,
		LogLevel:        cfg.Database.LogLevel,
		OnRetry: func(attempt uint, err error) {
			sysLogger.Warn("DATABASE", "Database not ready, retrying", map[string]interface{}{
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
		},
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(cfg.Database.Connection); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer container.Close()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(srv.Run)
	eg.Go(func() error {
		<-ctx.Done()
		sysLogger.Info("SERVER", "Shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %w", err)
	}

	return nil
}
