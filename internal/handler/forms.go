package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

type registerForm struct {
	Email    string `form:"email" validate:"required,email,max=250"`
	Password string `form:"password" validate:"required"`
	Name     string `form:"name" validate:"required,max=250"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type postForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,url,max=250"`
	Body     string `form:"body" validate:"required"`
}

type commentForm struct {
	Text string `form:"text" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	return v
}

var (
	formDecoder = form.NewDecoder()
	formEncoder = form.NewEncoder()
)

// bindForm decodes r's posted form into dst by form tag. Values are trimmed
// unless their field is listed in verbatim.
func bindForm(r *http.Request, dst any, verbatim ...string) error {
	values := make(url.Values, len(r.PostForm))
	for name, vs := range r.PostForm {
		if slices.Contains(verbatim, name) {
			values[name] = vs
			continue
		}

		trimmed := make([]string, len(vs))
		for i, v := range vs {
			trimmed[i] = strings.TrimSpace(v)
		}
		values[name] = trimmed
	}

	return formDecoder.Decode(dst, values)
}

// validationErrors maps each failing form field to a message for the page.
func validationErrors(err error) map[string]string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return map[string]string{"": err.Error()}
	}

	messages := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages[fe.Field()] = "This field is required."
		case "email":
			messages[fe.Field()] = "Enter a valid email address."
		case "url":
			messages[fe.Field()] = "Enter a valid URL."
		case "max":
			messages[fe.Field()] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		default:
			messages[fe.Field()] = "Invalid value."
		}
	}

	return messages
}

// formValues returns the form's fields for re-filling the page, without passwords.
func formValues(v any) map[string]string {
	values, err := formEncoder.Encode(v)
	if err != nil {
		return map[string]string{}
	}

	out := make(map[string]string, len(values))
	for name := range values {
		if name == "password" {
			continue
		}
		out[name] = values.Get(name)
	}

	return out
}
