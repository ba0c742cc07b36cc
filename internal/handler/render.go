package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/csrf"

	"blogsite/internal/models"
	"blogsite/internal/session"
)

//go:embed templates
var templateFS embed.FS

const baseTemplate = "templates/base.html"

type TemplateData struct {
	Title       string
	CurrentUser *models.User
	LoggedIn    bool
	IsAdmin     bool
	Flashes     []string
	Message     string
	Year        int

	Posts    []models.Post
	Post     *models.Post
	Comments []models.CommentView

	IsEdit         bool
	UploadsEnabled bool
	FormAction     string
	FormData       map[string]string
	FormErrors     map[string]string
	FormError      string
	CSRFField      template.HTML
}

var functions = template.FuncMap{
	// Post bodies are written by the administrator in a rich text editor.
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// parseTemplates builds one template set per page, each layered on the base layout.
func parseTemplates() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == baseTemplate {
			continue
		}

		ts, err := template.New(path.Base(page)).Funcs(functions).ParseFS(templateFS, baseTemplate, page)
		if err != nil {
			return nil, err
		}
		templates[path.Base(page)] = ts
	}

	return templates, nil
}

// render executes page into a buffer first so a template error never leaves a
// half-written response.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data *TemplateData) {
	if data == nil {
		data = &TemplateData{}
	}

	principal := session.Principal(r.Context())
	data.CurrentUser = principal
	data.LoggedIn = principal.IsAuthenticated()
	data.IsAdmin = principal.IsAdmin()
	data.Flashes = append(data.Flashes, h.popFlash(w, r)...)
	data.Year = time.Now().Year()
	data.CSRFField = csrf.TemplateField(r)
	if data.FormData == nil {
		data.FormData = map[string]string{}
	}

	ts, ok := h.templates[page]
	if !ok {
		h.Log.Error("template does not exist", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		h.Log.Error("failed to render template", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
