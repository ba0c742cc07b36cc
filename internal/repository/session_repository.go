package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogsite/internal/models"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES (:token, :user_id, :expires_at, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		if foreignKeyViolation(err) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?`

	var session models.Session
	err := r.db.GetContext(ctx, &session, r.db.Rebind(query), token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = ?`

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return n, nil
}
