package config

import (
	"context"
	"log/slog"
	"os"
	"time"

	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dbMinConns       = 5
	dbMaxConns       = 10
	dbConnectTimeout = 10 * time.Second
	dbConnectRetries = 2
)

// InitPostgres builds the shared connection pool. The initial connection is
// attempted a bounded number of times before the process gives up.
func InitPostgres(cfg *AppConfig) *pgxpool.Pool {
	poolCfg, err := pgxpool.ParseConfig(cfg.DBConnectionString())
	if err != nil {
		slog.Error("Invalid database configuration", "error", err)
		os.Exit(1)
	}

	poolCfg.MinConns = dbMinConns
	poolCfg.MaxConns = dbMaxConns
	poolCfg.ConnConfig.ConnectTimeout = dbConnectTimeout

	pool, err := helper.RetryWithBackoff(func() (*pgxpool.Pool, bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
		defer cancel()

		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, true, err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, true, err
		}
		return p, false, nil
	}, dbConnectRetries, time.Second)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.DBMigrate {
		if err := migrate(pool); err != nil {
			slog.Error("Failed to run database migration", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema up to date")
	}

	return pool
}

func migrate(pool *pgxpool.Pool) error {
	schema, err := migrations.Schema()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = pool.Exec(ctx, schema)
	return err
}
