package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-playground/validator/v10"

	"blogsite/internal/config"
	"blogsite/internal/logger"
	"blogsite/internal/models"
	"blogsite/internal/service"
)

// SessionManager is the part of *session.Manager the handlers drive.
type SessionManager interface {
	Login(ctx context.Context, w http.ResponseWriter, user *models.User) error
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	TablesService  service.TablesService
	Sessions       SessionManager
	Cfg            *config.Config
	Validate       *validator.Validate
	Log            *logger.Logger

	templates map[string]*template.Template
	flashKey  []byte
}

func NewHandlers(services *service.Service, sessions SessionManager, cfg *config.Config, log *logger.Logger) (*Handlers, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handlers{
		AuthService:    services.Auth,
		PostService:    services.Post,
		CommentService: services.Comment,
		TablesService:  services.Tables,
		Sessions:       sessions,
		Cfg:            cfg,
		Validate:       newValidator(),
		Log:            log,
		templates:      templates,
		flashKey:       flashKey(cfg.Session.Secret),
	}, nil
}
