package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"blogsite/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) (*models.Post, error)
	CountByImgURL(ctx context.Context, imgURL string) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Session SessionRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Session: NewSessionRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
