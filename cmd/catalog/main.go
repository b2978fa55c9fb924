// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Catalog is the entry point for the media catalog's storage process.

It owns no transport of its own (see SPEC_FULL.md's Non-goals); its job
is purely to wire the ambient stack together and hand a ready
[media.Repository] to whatever embeds it, then wait out its lifecycle.

Usage:

	go run cmd/catalog/main.go

The flags/environment variables are:

	ENVIRONMENT        deployment environment (development, production)
	DATABASE_URL       Postgres connection string (required)
	MIGRATION_PATH     filesystem path to the migrations directory
	DB_POOL_MAX_CONNS  connection pool upper bound
	DB_POOL_MIN_CONNS  connection pool lower bound

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish a connection to Postgres.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Construct the media repository over the pool and logger,
    then exercise it once against a context carrying that logger.
 6. Lifecycle: Block until a termination signal, then shut down cleanly.

No business logic lives here. This file is strictly for orchestration
and wiring: per §9, there is no process-wide singleton — the pool is
built once, here, and passed explicitly to NewRepository.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/hoarder/internal/media"
	"github.com/taibuivan/hoarder/internal/platform/config"
	"github.com/taibuivan/hoarder/internal/platform/constants"
	"github.com/taibuivan/hoarder/internal/platform/ctxutil"
	"github.com/taibuivan/hoarder/internal/platform/migration"
	pgstore "github.com/taibuivan/hoarder/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("catalog_service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded", slog.String("environment", cfg.Environment))

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.PoolMaxConns, cfg.PoolMinConns, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Migrations
	if err := migration.RunUp(startupCtx, cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 5. Domain Wiring
	repository := media.NewRepository(pool, log)

	// A request-handling embedder (HTTP, gRPC, batch job) can attach a
	// per-request id via ctxutil.WithRequestID; loggerFrom annotates the
	// injected logger with it. A context-scoped logger is only used by
	// a repository constructed without one.
	readyCtx, cancelReady := context.WithTimeout(ctxutil.WithLogger(context.Background(), log), 10*time.Second)
	defer cancelReady()
	if _, err := repository.FetchAll(readyCtx, media.Window{Limit: 1}, media.FetchOptions{}); err != nil {
		return fmt.Errorf("storage smoke test: %w", err)
	}

	log.Info("catalog_repository_ready")

	// # 6. Lifecycle
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	defer cancelMonitor()
	go pgstore.MonitorStats(monitorCtx, pool, log, time.Minute)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Info("shutdown_signal_received", slog.String("signal", sig.String()))

	return nil
}
