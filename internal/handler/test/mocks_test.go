package test

import (
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"

	"blogsite/internal/models"
	"blogsite/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, principal *models.User, postID int64) (*service.PostDetail, error) {
	args := m.Called(ctx, principal, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) GetPostForEdit(ctx context.Context, principal *models.User, postID int64) (*models.Post, error) {
	args := m.Called(ctx, principal, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, principal *models.User, in service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, principal, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) EditPost(ctx context.Context, principal *models.User, postID int64, in service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, principal, postID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, principal *models.User, postID int64) error {
	args := m.Called(ctx, principal, postID)
	return args.Error(0)
}

func (m *MockPostService) UploadImage(ctx context.Context, principal *models.User, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, principal, fileName, file, size)
	return args.String(0), args.Error(1)
}

func (m *MockPostService) DiscardImage(ctx context.Context, principal *models.User, imageURL string) error {
	args := m.Called(ctx, principal, imageURL)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, principal *models.User, postID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, principal, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommentView), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) Health(ctx context.Context) (*service.Health, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Health), args.Error(1)
}

type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Login(ctx context.Context, w http.ResponseWriter, user *models.User) error {
	args := m.Called(ctx, w, user)
	return args.Error(0)
}

func (m *MockSessionManager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	args := m.Called(ctx, w, r)
	return args.Error(0)
}
