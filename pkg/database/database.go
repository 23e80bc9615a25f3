// Package database manages the PostgreSQL connection pool and ties its
// lifetime to the application lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wardenhq/warden/pkg/lifecycle"
)

// System exposes the connection pool and hooks its lifetime into the
// lifecycle coordinator.
type System interface {
	// Connection returns the underlying pool.
	Connection() *sql.DB
	// Start registers the ping-on-startup and close-on-shutdown hooks.
	Start(lc *lifecycle.Coordinator) error
}

type pg struct {
	pool        *sql.DB
	logger      *slog.Logger
	pingTimeout time.Duration
}

// New opens the pool and applies connection limits from the config.
// sql.Open validates the DSN lazily; no connection is made until the
// startup hook pings.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	pool, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &pg{
		pool:        pool,
		logger:      logger.With("system", "database"),
		pingTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *pg) Connection() *sql.DB {
	return d.pool
}

func (d *pg) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.pingTimeout)
		defer cancel()

		if err := d.pool.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.pool.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
