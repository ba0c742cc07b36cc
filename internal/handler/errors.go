package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogsite/internal/models"
)

const loginRequiredMessage = "Please log in to access this page."

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// handleError turns a service error into a response. Forbidden and not found
// look the same to the client.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrForbidden):
		h.NotFound(w, r)
	case errors.Is(err, models.ErrUnauthenticated):
		h.setFlash(w, loginRequiredMessage)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		h.ServerError(w, r, err)
	}
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error.html", &TemplateData{
		Title:   "Not Found",
		Message: "The page you requested does not exist.",
	})
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	h.render(w, r, http.StatusInternalServerError, "error.html", &TemplateData{
		Title:   "Server Error",
		Message: "Something went wrong. Please try again later.",
	})
}
