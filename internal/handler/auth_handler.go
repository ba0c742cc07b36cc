package handlers

import (
	"errors"
	"net/http"

	"blogsite/internal/models"
	"blogsite/internal/service"
)

const (
	duplicateEmailMessage     = "You've already signed up with that email, log in instead!"
	invalidCredentialsMessage = "Invalid email or password."
)

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", &TemplateData{Title: "Register"})
}

// Register creates the account and logs it in. An email that is already taken
// sends the visitor to the login page instead.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "register.html", &TemplateData{Title: "Register", FormError: "Invalid form submission."})
		return
	}

	var form registerForm
	if err := bindForm(r, &form, "password"); err != nil {
		h.render(w, r, http.StatusBadRequest, "register.html", &TemplateData{Title: "Register", FormError: "Invalid form submission."})
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, "register.html", &TemplateData{
			Title:      "Register",
			FormData:   formValues(form),
			FormErrors: validationErrors(err),
		})
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			h.setFlash(w, duplicateEmailMessage)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.ServerError(w, r, err)
		return
	}

	if err := h.Sessions.Login(r.Context(), w, user); err != nil {
		h.Log.Error("failed to start session after registration", "user_id", user.ID, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", &TemplateData{Title: "Log In"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login.html", &TemplateData{Title: "Log In", FormError: "Invalid form submission."})
		return
	}

	var form loginForm
	if err := bindForm(r, &form, "password"); err != nil {
		h.render(w, r, http.StatusBadRequest, "login.html", &TemplateData{Title: "Log In", FormError: "Invalid form submission."})
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, "login.html", &TemplateData{
			Title:      "Log In",
			FormData:   formValues(form),
			FormErrors: validationErrors(err),
		})
		return
	}

	user, err := h.AuthService.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.setFlash(w, invalidCredentialsMessage)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.ServerError(w, r, err)
		return
	}

	if err := h.Sessions.Login(r.Context(), w, user); err != nil {
		h.ServerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), w, r); err != nil {
		h.Log.Error("failed to end session", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
