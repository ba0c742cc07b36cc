package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogsite/internal/config"
	"blogsite/internal/logger"
	"blogsite/internal/models"
	"blogsite/internal/repository"
)

var ErrEmptyComment = errors.New("comment text is empty")

type CommentService interface {
	AddComment(ctx context.Context, principal *models.User, postID int64, text string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	avatar      config.Avatar
	log         *logger.Logger
}

func NewCommentService(commentRepo repository.CommentRepository, avatar config.Avatar, log *logger.Logger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		avatar:      avatar,
		log:         log,
	}
}

// AddComment attaches text to the post on behalf of principal. A post that
// does not exist yields models.ErrNotFound.
func (s *commentService) AddComment(ctx context.Context, principal *models.User, postID int64, text string) (*models.Comment, error) {
	if err := Authorize(principal, ActionComment); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: principal.ID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.log.Info("comment added", "comment_id", comment.ID, "post_id", postID, "user_id", principal.ID)
	return comment, nil
}

// ListByPost returns the post's comments with their authors' avatars.
func (s *commentService) ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		comments[i].AvatarURL = AvatarURL(comments[i].AuthorEmail, s.avatar.Size, s.avatar.Fallback)
	}

	return comments, nil
}
