package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"blogsite/internal/service"
)

// Routes registers every page of the site.
func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/about", h.About).Methods(http.MethodGet)
	r.HandleFunc("/contact", h.Contact).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/register", h.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/post/{id:[0-9]+}", h.requireLogin(http.HandlerFunc(h.ShowPost))).Methods(http.MethodGet)
	r.Handle("/post/{id:[0-9]+}", h.requireLogin(http.HandlerFunc(h.AddComment))).Methods(http.MethodPost)

	r.Handle("/new-post", h.adminOnly(service.ActionCreatePost, h.NewPostPage)).Methods(http.MethodGet)
	r.Handle("/new-post", h.adminOnly(service.ActionCreatePost, h.CreatePost)).Methods(http.MethodPost)
	r.Handle("/edit-post/{id:[0-9]+}", h.adminOnly(service.ActionEditPost, h.EditPostPage)).Methods(http.MethodGet)
	r.Handle("/edit-post/{id:[0-9]+}", h.adminOnly(service.ActionEditPost, h.EditPost)).Methods(http.MethodPost)
	r.Handle("/delete/{id:[0-9]+}", h.adminOnly(service.ActionDeletePost, h.DeletePost)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	return r
}
