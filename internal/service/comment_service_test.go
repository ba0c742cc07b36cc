package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogsite/internal/config"
	"blogsite/internal/logger"
	"blogsite/internal/models"
)

var testAvatar = config.Avatar{Size: 100, Fallback: "identicon"}

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		principal *models.User
		text      string
		setupMock func(*MockCommentRepository)
		wantErr   error
	}{
		{
			name:      "member comments",
			principal: member,
			text:      "nice!",
			setupMock: func(repo *MockCommentRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
					return c.Text == "nice!" && c.PostID == 7 && c.AuthorID == member.ID
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Comment).ID = 3
				}).Return(nil)
			},
		},
		{
			name:      "anonymous rejected before any lookup",
			principal: models.Anonymous(),
			text:      "hi",
			setupMock: func(*MockCommentRepository) {},
			wantErr:   models.ErrUnauthenticated,
		},
		{
			name:      "blank text",
			principal: member,
			text:      "   ",
			setupMock: func(*MockCommentRepository) {},
			wantErr:   ErrEmptyComment,
		},
		{
			name:      "post gone",
			principal: member,
			text:      "late",
			setupMock: func(repo *MockCommentRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(models.ErrNotFound)
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCommentRepository)
			tt.setupMock(repo)

			svc := NewCommentService(repo, testAvatar, logger.NewNop())
			comment, err := svc.AddComment(ctx, tt.principal, 7, tt.text)

			if tt.wantErr != nil {
				assert.Nil(t, comment)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(3), comment.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCommentService_AddComment_StorageFailure(t *testing.T) {
	repo := new(MockCommentRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := NewCommentService(repo, testAvatar, logger.NewNop())
	_, err := svc.AddComment(context.Background(), member, 7, "text")

	assert.Contains(t, err.Error(), "failed to add comment")
}

func TestCommentService_ListByPost(t *testing.T) {
	repo := new(MockCommentRepository)
	repo.On("ListByPost", mock.Anything, int64(7)).Return([]models.CommentView{
		{
			Comment:     models.Comment{ID: 1, Text: "nice!", PostID: 7, AuthorID: 2, CreatedAt: time.Now()},
			AuthorName:  "Bob",
			AuthorEmail: "b@x.com",
		},
	}, nil)

	svc := NewCommentService(repo, testAvatar, logger.NewNop())
	comments, err := svc.ListByPost(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, AvatarURL("b@x.com", 100, "identicon"), comments[0].AvatarURL)
}

func TestTablesService_Health(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		db := new(MockHealthChecker)
		db.On("HealthCheck", mock.Anything).Return(nil)
		tables := new(MockTablesRepository)
		tables.On("CountTablesDB", mock.Anything).Return(4, nil)

		health, err := NewTablesService(tables, db).Health(ctx)

		require.NoError(t, err)
		assert.Equal(t, &Health{Status: "ok", Tables: 4}, health)
	})

	t.Run("database down", func(t *testing.T) {
		db := new(MockHealthChecker)
		db.On("HealthCheck", mock.Anything).Return(errors.New("refused"))
		tables := new(MockTablesRepository)

		health, err := NewTablesService(tables, db).Health(ctx)

		assert.Nil(t, health)
		assert.Contains(t, err.Error(), "database unreachable")
		tables.AssertNotCalled(t, "CountTablesDB", mock.Anything)
	})
}
