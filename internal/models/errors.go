package models

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateTitle     = errors.New("a post with this title already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	// ErrForbidden is rendered exactly like ErrNotFound at the HTTP edge.
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
)
