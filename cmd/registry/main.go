// Package main is the entry point of the student registry shell.
//
// It loads configuration from the environment, opens the configured document
// store, loads the record set once and hands control to the interactive menu.
// Every successful change is written back to the store before the menu
// returns, so an interrupt never loses acknowledged data.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/alem-hub/student-registry/config"
	"github.com/alem-hub/student-registry/internal/application/registry"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/boltdb"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/file"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/student-registry/internal/interface/console"
	"github.com/alem-hub/student-registry/pkg/logger"
	"github.com/alem-hub/student-registry/pkg/retry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log, closeLog, err := setupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()
	log.Info("starting student registry",
		"env", cfg.App.Environment,
		"version", cfg.App.Version,
		"backend", cfg.Storage.Backend,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DOCUMENT STORE
	// ─────────────────────────────────────────────────────────────────────────
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		log.Info("closing document store...", logger.Store(store.Name()))
		closeStore()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. RECORD SERVICE
	// ─────────────────────────────────────────────────────────────────────────
	gateway := persistence.NewGateway(store, log)
	service := registry.NewService(ctx, gateway, log)
	log.Info("records loaded", logger.Count(service.Len()))

	// ─────────────────────────────────────────────────────────────────────────
	// 5. INTERACTIVE SHELL
	// ─────────────────────────────────────────────────────────────────────────
	shell := console.NewShell(service, console.Config{
		In:     os.Stdin,
		Out:    os.Stdout,
		Logger: log,
	})

	done := make(chan error, 1)
	go func() { done <- shell.Run(ctx) }()

	// The shell blocks on stdin, so a signal ends the session from here.
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shell: %w", err)
		}
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		log.Info("received shutdown signal")
	}

	// The shell goroutine may still be inside a save. Close waits for it and
	// rejects anything later, so the deferred store release is safe.
	service.Close()

	if !service.Synced() {
		log.Warn("exiting with changes that were not persisted", logger.Err(gateway.Err()))
	}
	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger configures structured logging on stderr so it never interleaves
// with the menu on stdout. LOG_FILE adds a copy of every line in a file.
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	opts := logger.DefaultOptions()
	out, closeFile, err := logger.Tee(opts.Output, cfg.Observability.LogFile)
	if err != nil {
		return nil, nil, err
	}
	opts.Output = out
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	opts.Format = logger.ParseFormat(cfg.Observability.LogFormat)
	opts.AddSource = cfg.App.Debug

	log := logger.New(opts)
	slog.SetDefault(log)
	return log, func() { _ = closeFile() }, nil
}

// openStore builds the DocumentStore selected by STORAGE_BACKEND together
// with its release function.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (persistence.DocumentStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return file.NewStore(cfg.Storage.FilePath), func() {}, nil

	case config.BackendBolt:
		store, err := boltdb.Open(cfg.Storage.BoltPath, cfg.Storage.Document)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close bolt database", logger.Err(err))
			}
		}, nil

	case config.BackendPostgres:
		return openPostgres(ctx, cfg, log)

	case config.BackendRedis:
		return openRedis(ctx, cfg, log)
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (persistence.DocumentStore, func(), error) {
	pgCfg := postgres.DefaultConfig(cfg.Database.URL)
	pgCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgCfg.MinConns = int32(cfg.Database.MinConns)
	pgCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	pgCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	pgCfg.QueryTimeout = cfg.Database.QueryTimeout

	log.Info("connecting to database...")
	conn, err := retry.DoWithData(ctx, retry.StoreRetrier(log, "postgres"),
		func(ctx context.Context) (*postgres.Connection, error) {
			// A malformed URL will not improve with retries.
			if _, err := pgCfg.PoolConfig(); err != nil {
				return nil, retry.Permanent(err)
			}
			return postgres.NewConnection(ctx, pgCfg)
		})
	if err != nil {
		return nil, nil, err
	}

	log.Info("checking database migrations...")
	if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	return postgres.NewDocumentStore(conn, cfg.Storage.Document), conn.Close, nil
}

func openRedis(ctx context.Context, cfg *config.Config, log *slog.Logger) (persistence.DocumentStore, func(), error) {
	redisCfg := redis.DefaultConfig()
	redisCfg.URL = cfg.Redis.URL
	redisCfg.Host = cfg.Redis.Host
	redisCfg.Port = cfg.Redis.Port
	redisCfg.Password = cfg.Redis.Password
	redisCfg.DB = cfg.Redis.DB
	redisCfg.PoolSize = cfg.Redis.PoolSize
	redisCfg.MaxRetries = cfg.Redis.MaxRetries
	redisCfg.DialTimeout = cfg.Redis.DialTimeout
	redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
	redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

	opts, err := redisCfg.Options()
	if err != nil {
		return nil, nil, err
	}

	log.Info("connecting to Redis...", "addr", opts.Addr, "tls", opts.TLSConfig != nil)
	client, err := retry.DoWithData(ctx, retry.StoreRetrier(log, "redis"),
		func(ctx context.Context) (*goredis.Client, error) {
			client, err := redis.NewClient(ctx, redisCfg)
			if err != nil && !errors.Is(err, redis.ErrCacheConnection) {
				return nil, retry.Permanent(err)
			}
			return client, err
		})
	if err != nil {
		return nil, nil, err
	}

	store, err := redis.NewDocumentStore(client, cfg.Storage.Document)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.Info("Redis connection established")

	return store, func() {
		if err := client.Close(); err != nil {
			log.Error("failed to close Redis client", logger.Err(err))
		}
	}, nil
}
