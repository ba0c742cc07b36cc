package service

import (
	"github.com/thejerf/abtime"

	"blogsite/internal/config"
	"blogsite/internal/logger"
	"blogsite/internal/repository"
	"blogsite/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Tables  TablesService
}

func NewService(
	rep *repository.Repository,
	db HealthChecker,
	store storage.Storage,
	cfg *config.Config,
	clock abtime.AbstractTime,
	log *logger.Logger,
) *Service {
	comments := NewCommentService(rep.Comment, cfg.Avatar, log)

	return &Service{
		Auth:    NewAuthService(rep.User, log),
		Post:    NewPostService(rep.Post, comments, store, clock, log),
		Comment: comments,
		Tables:  NewTablesService(rep.Tables, db),
	}
}
