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

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, created_at`

// Create inserts user and fills in its ID and Role. The first user ever
// stored becomes the administrator; everyone after is a plain user.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES (?, ?, ?, CASE WHEN EXISTS (SELECT 1 FROM users) THEN 'user' ELSE 'admin' END, ?)
		RETURNING id, role
	`

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		user.Email, user.PasswordHash, user.Name, user.CreatedAt,
	).Scan(&user.ID, &user.Role)
	if err == nil {
		return nil
	}

	if uniqueViolation(err, "email") {
		return models.ErrDuplicateEmail
	}

	// Another registration claimed the admin row between our EXISTS check
	// and insert.
	if uniqueViolation(err, "role") {
		return r.createWithRole(ctx, user, models.RoleUser)
	}

	return fmt.Errorf("failed to create user: %w", err)
}

func (r *userRepository) createWithRole(ctx context.Context, user *models.User, role models.Role) error {
	query := `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, role
	`

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		user.Email, user.PasswordHash, user.Name, role, user.CreatedAt,
	).Scan(&user.ID, &user.Role)
	if err != nil {
		if uniqueViolation(err, "email") {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	err := r.db.GetContext(ctx, &user, r.db.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	err := r.db.GetContext(ctx, &user, r.db.Rebind(query), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}
