package handlers

import (
	"net/http"

	"blogsite/internal/middleware"
	"blogsite/internal/service"
	"blogsite/internal/session"
)

// requireLogin lets only authenticated principals through; everyone else is
// sent to the login page.
func (h *Handlers) requireLogin(next http.Handler) http.Handler {
	return middleware.NoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.Authorize(session.Principal(r.Context()), service.ActionViewPost); err != nil {
			h.handleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// adminOnly runs the authorization policy for action before next. A refusal
// renders the not-found page.
func (h *Handlers) adminOnly(action service.Action, next http.HandlerFunc) http.Handler {
	return middleware.NoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.Authorize(session.Principal(r.Context()), action); err != nil {
			h.Log.Debug("admin action refused", "action", action.String(), "path", r.URL.Path)
			h.handleError(w, r, err)
			return
		}
		next(w, r)
	}))
}
