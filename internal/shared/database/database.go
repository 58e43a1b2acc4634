package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/pantryapp/pantry/internal/shared/config"
	"github.com/pantryapp/pantry/internal/shared/database/migrations"
)

// NewPgxPool creates a PostgreSQL connection pool with production-ready settings.
// It runs pending schema migrations before handing out the pool.
// Pool settings: max 10 connections, min 5 connections, 1-hour max lifetime, 30-min idle timeout.
func NewPgxPool(cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse database URL")
		return nil, err
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	logger.Debug().
		Int32("max_conns", poolConfig.MaxConns).
		Int32("min_conns", poolConfig.MinConns).
		Dur("max_conns_lifetime", poolConfig.MaxConnLifetime).
		Dur("max_conns_idletime", poolConfig.MaxConnIdleTime).
		Msg("Database connection pool configuration")

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create database connection pool")
		return nil, err
	}

	logger.Debug().Msg("Database connection pool created successfully")
	return pool, nil
}

// runMigrations applies embedded goose migrations over a database/sql handle
// using the pgx stdlib driver. The handle is closed afterwards; the pgx pool
// is the only long-lived connection source.
func runMigrations(databaseURL string, logger zerolog.Logger) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open database for migrations")
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(db, "."); err != nil {
		logger.Error().Err(err).Msg("Failed to run database migrations")
		return err
	}

	logger.Debug().Msg("Database migrations applied")
	return nil
}
