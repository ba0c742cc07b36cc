package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogsite/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts comment. A post or author that no longer exists is
// reported as models.ErrNotFound.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO comments (text, post_id, author_id, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		comment.Text, comment.PostID, comment.AuthorID, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		if foreignKeyViolation(err) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPost returns the post's comments, oldest first, with author details.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error) {
	query := `
		SELECT c.id, c.text, c.post_id, c.author_id, c.created_at,
		       u.name AS author_name, u.email AS author_email
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ?
		ORDER BY c.id
	`

	comments := []models.CommentView{}
	if err := r.db.SelectContext(ctx, &comments, r.db.Rebind(query), postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}
