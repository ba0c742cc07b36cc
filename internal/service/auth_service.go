package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blogsite/internal/credentials"
	"blogsite/internal/logger"
	"blogsite/internal/models"
	"blogsite/internal/repository"
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		log:      log,
	}
}

// Register stores a new user. The first user ever registered becomes the
// administrator. An email that is already taken yields models.ErrDuplicateEmail.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	hash, err := credentials.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login returns models.ErrInvalidCredentials both for an unknown email and a
// wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison.
			credentials.Verify(password, placeholderHash())
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !credentials.Verify(password, user.PasswordHash) {
		s.log.Debug("password mismatch", "user_id", user.ID)
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

var (
	placeholderOnce sync.Once
	placeholder     string
)

func placeholderHash() string {
	placeholderOnce.Do(func() {
		placeholder, _ = credentials.Hash("placeholder password")
	})
	return placeholder
}
