package service

import (
	"context"
	"fmt"

	"blogsite/internal/repository"
)

// HealthChecker is satisfied by *database.DB.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Health struct {
	Status string `json:"status"`
	Tables int    `json:"tables"`
}

type TablesService interface {
	Health(ctx context.Context) (*Health, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
	db         HealthChecker
}

func NewTablesService(tablesRepo repository.TablesRepository, db HealthChecker) TablesService {
	return &tablesService{tablesRepo: tablesRepo, db: db}
}

func (t *tablesService) Health(ctx context.Context) (*Health, error) {
	if err := t.db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	count, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return nil, err
	}

	return &Health{Status: "ok", Tables: count}, nil
}
