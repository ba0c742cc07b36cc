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

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, title, subtitle, date, body, author, img_url, created_at`

// Create inserts post and sets its ID. The title's unique constraint is the
// only duplicate check.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO posts (title, subtitle, date, body, author, img_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		post.Title, post.Subtitle, post.Date, post.Body, post.Author, post.ImgURL, post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		if uniqueViolation(err, "title") {
			return models.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	var post models.Post
	err := r.db.GetContext(ctx, &post, r.db.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// List returns every post in insertion order.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY id`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// Update rewrites the editable fields of post. Date and Author are kept as
// they were at creation.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = ?,
			subtitle = ?,
			body = ?,
			img_url = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID,
	)
	if err != nil {
		if uniqueViolation(err, "title") {
			return models.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes the post and all of its comments in one transaction and
// returns the removed post.
func (r *postRepository) Delete(ctx context.Context, id int64) (*models.Post, error) {
	var deleted models.Post

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &deleted, tx.Rebind(`SELECT `+postColumns+` FROM posts WHERE id = ?`), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to load post for deletion: %w", err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM comments WHERE post_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM posts WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if rowsAffected == 0 {
			return models.ErrNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

// CountByImgURL reports how many posts show imgURL as their header image.
func (r *postRepository) CountByImgURL(ctx context.Context, imgURL string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM posts WHERE img_url = ?`), imgURL); err != nil {
		return 0, fmt.Errorf("failed to count posts by image: %w", err)
	}

	return count, nil
}
