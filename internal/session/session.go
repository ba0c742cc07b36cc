package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"

	"blogsite/internal/config"
	"blogsite/internal/logger"
	"blogsite/internal/models"
	"blogsite/internal/repository"
)

var errTokenMismatch = errors.New("session token does not match its claims")

// Manager binds a logged-in user to a browser through a signed cookie backed
// by a row in the sessions table.
type Manager struct {
	sessions   repository.SessionRepository
	users      repository.UserRepository
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	clock      abtime.AbstractTime
	log        *logger.Logger
}

func NewManager(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	cfg config.Session,
	clock abtime.AbstractTime,
	log *logger.Logger,
) *Manager {
	if clock == nil {
		clock = abtime.NewRealTime()
	}

	return &Manager{
		sessions:   sessions,
		users:      users,
		secret:     []byte(cfg.Secret),
		ttl:        cfg.Duration,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		clock:      clock,
		log:        log,
	}
}

// Login stores a new session for user and sets the session cookie.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, user *models.User) error {
	if !user.IsAuthenticated() {
		return fmt.Errorf("cannot log in anonymous principal")
	}

	now := m.clock.Now().UTC()
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	if err := m.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	signed, err := m.sign(session)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	m.log.Info("user logged in", "user_id", user.ID)
	return nil
}

// Logout forgets the session carried by r, if any, and clears the cookie.
// Calling it without a session is not an error.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer m.clearCookie(w)

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	// An expired token still names a row worth removing.
	claims, err := m.parse(cookie.Value, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}

	if err := m.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Load returns the principal of r. Every failure resolves to the anonymous
// principal.
func (m *Manager) Load(r *http.Request) *models.User {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return models.Anonymous()
	}

	user, err := m.load(r.Context(), cookie.Value)
	if err != nil {
		m.log.Debug("session rejected", "error", err)
		return models.Anonymous()
	}
	if user == nil {
		return models.Anonymous()
	}

	return user
}

func (m *Manager) load(ctx context.Context, value string) (*models.User, error) {
	claims, err := m.parse(value)
	if errors.Is(err, jwt.ErrTokenExpired) {
		m.forget(ctx, claims.ID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := m.sessions.GetByToken(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	if strconv.FormatInt(session.UserID, 10) != claims.Subject {
		return nil, errTokenMismatch
	}

	if session.Expired(m.clock.Now()) {
		m.forget(ctx, session.Token)
		return nil, nil
	}

	user, err := m.Resolve(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		m.forget(ctx, session.Token)
		return nil, nil
	}

	return user, nil
}

func (m *Manager) forget(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := m.sessions.Delete(ctx, token); err != nil {
		m.log.Error("failed to delete stale session", "error", err)
	}
}

// Resolve looks up the user behind a session. It returns nil, nil when the
// user does not exist.
func (m *Manager) Resolve(ctx context.Context, id int64) (*models.User, error) {
	user, err := m.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// CleanupExpired removes every session past its expiry.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := m.sessions.DeleteExpired(ctx, m.clock.Now().UTC())
	if err != nil {
		return 0, err
	}

	m.log.Info("expired sessions removed", "count", n)
	return n, nil
}

func (m *Manager) sign(session *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.Token,
		Subject:   strconv.FormatInt(session.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

func (m *Manager) parse(value string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
	)

	// claims is returned even on failure; the signature is checked before
	// expiry, so an expired token's ID is still trustworthy.
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return claims, fmt.Errorf("invalid session token: %w", err)
	}

	if claims.ID == "" {
		return claims, errTokenMismatch
	}

	return claims, nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
