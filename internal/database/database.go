package database

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"blogsite/internal/config"
	"blogsite/internal/logger"
)

//go:embed migrations
var migrations embed.FS

var _ goose.Logger = (*logger.Logger)(nil)

type DB struct {
	*sqlx.DB
}

// ConnectDB opens the configured store, sizes the pool and applies migrations.
func ConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	log.Info("connecting to database", "driver", cfg.Driver, "host", cfg.Host, "dbname", cfg.Name)

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	dbStruct := &DB{db}

	goose.SetLogger(log)
	if err := dbStruct.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Info("database connection established")
	return dbStruct, nil
}

// RunMigrations applies the embedded goose migrations for the connection's dialect.
func (db *DB) RunMigrations(ctx context.Context) error {
	dialect := db.DriverName()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB.DB, "migrations/"+dialect); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.PingContext(ctx)
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}
