package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"blogsite/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) CountByImgURL(ctx context.Context, imgURL string) (int, error) {
	args := m.Called(ctx, imgURL)
	return args.Int(0), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommentView), args.Error(1)
}

type MockTablesRepository struct {
	mock.Mock
}

func (m *MockTablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) ObjectName(imageURL string) (string, bool) {
	args := m.Called(imageURL)
	return args.String(0), args.Bool(1)
}

var (
	admin  = &models.User{ID: 1, Email: "a@x.com", Name: "Alice", Role: models.RoleAdmin}
	member = &models.User{ID: 2, Email: "b@x.com", Name: "Bob", Role: models.RoleUser}
)

var testNow = time.Date(2024, 8, 5, 9, 30, 0, 0, time.UTC)
