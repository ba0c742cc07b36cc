package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`
	if r.db.DriverName() == "sqlite3" {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count database tables: %w", err)
	}

	return count, nil
}
