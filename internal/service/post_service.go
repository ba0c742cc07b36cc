package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/thejerf/abtime"

	"blogsite/internal/logger"
	"blogsite/internal/models"
	"blogsite/internal/repository"
	"blogsite/internal/storage"
)

var ErrImageStorageDisabled = errors.New("image storage is not configured")

// PostInput holds the fields an administrator writes on the post form.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// PostDetail is a post together with its comments.
type PostDetail struct {
	Post     *models.Post
	Comments []models.CommentView
}

type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, principal *models.User, postID int64) (*PostDetail, error)
	GetPostForEdit(ctx context.Context, principal *models.User, postID int64) (*models.Post, error)
	CreatePost(ctx context.Context, principal *models.User, in PostInput) (*models.Post, error)
	EditPost(ctx context.Context, principal *models.User, postID int64, in PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, principal *models.User, postID int64) error
	UploadImage(ctx context.Context, principal *models.User, fileName string, file io.Reader, size int64) (string, error)
	DiscardImage(ctx context.Context, principal *models.User, imageURL string) error
}

type postService struct {
	postRepo repository.PostRepository
	comments CommentService
	storage  storage.Storage
	clock    abtime.AbstractTime
	log      *logger.Logger
}

// NewPostService builds the post service. store may be nil, in which case
// image uploads are refused.
func NewPostService(
	postRepo repository.PostRepository,
	comments CommentService,
	store storage.Storage,
	clock abtime.AbstractTime,
	log *logger.Logger,
) PostService {
	if clock == nil {
		clock = abtime.NewRealTime()
	}

	return &postService{
		postRepo: postRepo,
		comments: comments,
		storage:  store,
		clock:    clock,
		log:      log,
	}
}

func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.List(ctx)
}

func (p *postService) GetPost(ctx context.Context, principal *models.User, postID int64) (*PostDetail, error) {
	if err := Authorize(principal, ActionViewPost); err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := p.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, Comments: comments}, nil
}

func (p *postService) GetPostForEdit(ctx context.Context, principal *models.User, postID int64) (*models.Post, error) {
	if err := Authorize(principal, ActionEditPost); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, postID)
}

// CreatePost publishes a post dated today and signed with the principal's
// current name.
func (p *postService) CreatePost(ctx context.Context, principal *models.User, in PostInput) (*models.Post, error) {
	if err := Authorize(principal, ActionCreatePost); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     p.clock.Now().Format(models.PostDateLayout),
		Body:     in.Body,
		Author:   principal.Name,
		ImgURL:   in.ImgURL,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	p.log.Info("post created", "post_id", post.ID, "title", post.Title)
	return post, nil
}

// EditPost rewrites the post's title, subtitle, body and image. Its date and
// author stay as they were.
func (p *postService) EditPost(ctx context.Context, principal *models.User, postID int64, in PostInput) (*models.Post, error) {
	if err := Authorize(principal, ActionEditPost); err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	previousImage := post.ImgURL

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImgURL = in.ImgURL

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if previousImage != post.ImgURL {
		p.discardImage(ctx, previousImage)
	}

	p.log.Info("post edited", "post_id", post.ID)
	return post, nil
}

// DeletePost removes the post and its comments.
func (p *postService) DeletePost(ctx context.Context, principal *models.User, postID int64) error {
	if err := Authorize(principal, ActionDeletePost); err != nil {
		return err
	}

	deleted, err := p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	p.discardImage(ctx, deleted.ImgURL)

	p.log.Info("post deleted", "post_id", postID)
	return nil
}

// UploadImage stores a header image and returns its public URL.
func (p *postService) UploadImage(ctx context.Context, principal *models.User, fileName string, file io.Reader, size int64) (string, error) {
	if err := Authorize(principal, ActionUploadImage); err != nil {
		return "", err
	}

	if p.storage == nil {
		return "", ErrImageStorageDisabled
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	p.log.Info("image uploaded", "object", objectName)
	return imageURL, nil
}

// DiscardImage removes an upload that never made it into a saved post.
// An image some post still shows is kept.
func (p *postService) DiscardImage(ctx context.Context, principal *models.User, imageURL string) error {
	if err := Authorize(principal, ActionUploadImage); err != nil {
		return err
	}

	p.discardImage(ctx, imageURL)
	return nil
}

// discardImage removes an uploaded image that no post refers to any more.
// Failures are logged; the post change has already been committed.
func (p *postService) discardImage(ctx context.Context, imageURL string) {
	if p.storage == nil || imageURL == "" {
		return
	}

	objectName, ok := p.storage.ObjectName(imageURL)
	if !ok {
		return
	}

	refs, err := p.postRepo.CountByImgURL(ctx, imageURL)
	if err != nil {
		p.log.Warn("failed to count image references", "object", objectName, "error", err)
		return
	}
	if refs > 0 {
		p.log.Debug("image still in use", "object", objectName, "posts", refs)
		return
	}

	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		p.log.Warn("failed to delete image", "object", objectName, "error", err)
	}
}
