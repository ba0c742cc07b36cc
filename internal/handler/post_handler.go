package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"blogsite/internal/models"
	"blogsite/internal/service"
	"blogsite/internal/session"
)

const duplicateTitleMessage = "A post with this title already exists."

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index.html", &TemplateData{Title: "Blog", Posts: posts})
}

func (h *Handlers) ShowPost(w http.ResponseWriter, r *http.Request) {
	h.showPost(w, r, http.StatusOK, nil)
}

// showPost renders the post page, optionally with errors from a rejected comment.
func (h *Handlers) showPost(w http.ResponseWriter, r *http.Request, status int, formErrors map[string]string) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.PostService.GetPost(r.Context(), session.Principal(r.Context()), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, status, "post.html", &TemplateData{
		Title:      detail.Post.Title,
		Post:       detail.Post,
		Comments:   detail.Comments,
		FormErrors: formErrors,
	})
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.showPost(w, r, http.StatusBadRequest, map[string]string{"text": "Invalid form submission."})
		return
	}

	var form commentForm
	if err := bindForm(r, &form, "text"); err != nil {
		h.showPost(w, r, http.StatusBadRequest, map[string]string{"text": "Invalid form submission."})
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		h.showPost(w, r, http.StatusBadRequest, validationErrors(err))
		return
	}

	_, err := h.CommentService.AddComment(r.Context(), session.Principal(r.Context()), id, form.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyComment) {
			h.showPost(w, r, http.StatusBadRequest, map[string]string{"text": "This field is required."})
			return
		}
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (h *Handlers) NewPostPage(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, http.StatusOK, &TemplateData{FormAction: "/new-post"})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	form, data, uploaded, ok := h.bindPostForm(w, r)
	if !ok {
		return
	}
	data.FormAction = "/new-post"

	if data.FormErrors != nil {
		h.renderPostForm(w, r, http.StatusBadRequest, data)
		return
	}

	_, err := h.PostService.CreatePost(r.Context(), session.Principal(r.Context()), service.PostInput{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	})
	if err != nil {
		h.discardUpload(r, uploaded)
		if errors.Is(err, models.ErrDuplicateTitle) {
			data.FormError = duplicateTitleMessage
			h.renderPostForm(w, r, http.StatusConflict, data)
			return
		}
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) EditPostPage(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.PostService.GetPostForEdit(r.Context(), session.Principal(r.Context()), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.renderPostForm(w, r, http.StatusOK, &TemplateData{
		IsEdit:     true,
		FormAction: fmt.Sprintf("/edit-post/%d", id),
		FormData: formValues(postForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		}),
	})
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	form, data, uploaded, ok := h.bindPostForm(w, r)
	if !ok {
		return
	}
	data.IsEdit = true
	data.FormAction = fmt.Sprintf("/edit-post/%d", id)

	if data.FormErrors != nil {
		h.renderPostForm(w, r, http.StatusBadRequest, data)
		return
	}

	_, err := h.PostService.EditPost(r.Context(), session.Principal(r.Context()), id, service.PostInput{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	})
	if err != nil {
		h.discardUpload(r, uploaded)
		if errors.Is(err, models.ErrDuplicateTitle) {
			data.FormError = duplicateTitleMessage
			h.renderPostForm(w, r, http.StatusConflict, data)
			return
		}
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), session.Principal(r.Context()), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// bindPostForm reads and validates the post form, then stores an uploaded
// header image, which replaces the img_url field. uploaded is the stored
// image's URL when there was one. ok is false when a response was already
// written.
func (h *Handlers) bindPostForm(w http.ResponseWriter, r *http.Request) (form postForm, data *TemplateData, uploaded string, ok bool) {
	data = &TemplateData{}

	multipart := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	if multipart {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			data.FormError = "The upload is too large or malformed."
			h.renderPostForm(w, r, http.StatusBadRequest, data)
			return form, nil, "", false
		}
	} else if err := r.ParseForm(); err != nil {
		data.FormError = "Invalid form submission."
		h.renderPostForm(w, r, http.StatusBadRequest, data)
		return form, nil, "", false
	}

	if err := bindForm(r, &form, "body"); err != nil {
		data.FormError = "Invalid form submission."
		h.renderPostForm(w, r, http.StatusBadRequest, data)
		return form, nil, "", false
	}
	data.FormData = formValues(form)

	hasImage := multipart && r.MultipartForm != nil && len(r.MultipartForm.File["image"]) > 0

	var err error
	if hasImage {
		err = h.Validate.StructExcept(form, "ImgURL")
	} else {
		err = h.Validate.Struct(form)
	}
	if err != nil {
		data.FormErrors = validationErrors(err)
		return form, data, "", true
	}

	if !hasImage {
		return form, data, "", true
	}

	uploaded, err = h.uploadImage(r)
	if err != nil {
		if errors.Is(err, service.ErrImageStorageDisabled) {
			data.FormErrors = map[string]string{"image": "Image uploads are disabled; give an image URL instead."}
			return form, data, "", true
		}
		h.handleError(w, r, err)
		return form, nil, "", false
	}
	form.ImgURL = uploaded

	return form, data, uploaded, true
}

func (h *Handlers) uploadImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.PostService.UploadImage(r.Context(), session.Principal(r.Context()), header.Filename, file, header.Size)
}

// discardUpload removes an image stored for a post that was not saved.
func (h *Handlers) discardUpload(r *http.Request, imageURL string) {
	if imageURL == "" {
		return
	}

	if err := h.PostService.DiscardImage(r.Context(), session.Principal(r.Context()), imageURL); err != nil {
		h.Log.Warn("failed to discard upload", "url", imageURL, "error", err)
	}
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, status int, data *TemplateData) {
	data.Title = "New Post"
	if data.IsEdit {
		data.Title = "Edit Post"
	}
	data.UploadsEnabled = h.Cfg.MinIO.Enabled
	h.render(w, r, status, "make-post.html", data)
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", &TemplateData{Title: "About"})
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact.html", &TemplateData{Title: "Contact"})
}
