package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogsite/internal/credentials"
	"blogsite/internal/logger"
	"blogsite/internal/models"
)

func init() {
	credentials.Cost = bcrypt.MinCost
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "a@x.com" &&
				u.Name == "Alice" &&
				u.PasswordHash != "pw1" &&
				credentials.Verify("pw1", u.PasswordHash)
		})).Run(func(args mock.Arguments) {
			u := args.Get(1).(*models.User)
			u.ID = 1
			u.Role = models.RoleAdmin
		}).Return(nil)

		svc := NewAuthService(repo, logger.NewNop())
		user, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "pw1", Name: "Alice"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.True(t, user.IsAdmin())
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(models.ErrDuplicateEmail)

		svc := NewAuthService(repo, logger.NewNop())
		user, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Again"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		svc := NewAuthService(repo, logger.NewNop())
		_, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "pw", Name: "A"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to register user")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := credentials.Hash("pw2")
	require.NoError(t, err)
	bob := &models.User{ID: 2, Email: "b@x.com", Name: "Bob", PasswordHash: hash, Role: models.RoleUser}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantUser  bool
		wantErr   error
	}{
		{
			name:     "correct password",
			email:    "b@x.com",
			password: "pw2",
			setupMock: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "b@x.com").Return(bob, nil)
			},
			wantUser: true,
		},
		{
			name:     "wrong password",
			email:    "b@x.com",
			password: "pw1",
			setupMock: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "b@x.com").Return(bob, nil)
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "pw2",
			setupMock: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, models.ErrNotFound)
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "b@x.com",
			password: "",
			setupMock: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "b@x.com").Return(bob, nil)
			},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewAuthService(repo, logger.NewNop())
			user, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, bob.ID, user.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := credentials.Hash("right")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "known@x.com").
		Return(&models.User{ID: 1, Email: "known@x.com", PasswordHash: hash}, nil)
	repo.On("GetByEmail", mock.Anything, "unknown@x.com").
		Return(nil, models.ErrNotFound)

	svc := NewAuthService(repo, logger.NewNop())

	_, wrongPassword := svc.Login(ctx, "known@x.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "unknown@x.com", "right")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, errors.New("db down"))

	svc := NewAuthService(repo, logger.NewNop())
	_, err := svc.Login(context.Background(), "b@x.com", "pw")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
}
