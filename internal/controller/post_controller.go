// internal/controller/post_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/service"
)

type PostController struct {
	PostService *service.PostService
}

func (c *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	var body service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	post, err := c.PostService.CreatePost(user.ID, body)
	if err != nil {
		status := http.StatusBadRequest
		var notFound *appErrors.ErrNotFound
		if errors.As(err, &notFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (c *PostController) ListPosts(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")
	platform := r.URL.Query().Get("platform")

	posts, pagination, err := c.PostService.ListPosts(user.ID, page, pageSize, status, platform)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       posts,
		"pagination": pagination,
	})
}

func (c *PostController) GetPost(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := c.PostService.GetPost(id, user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (c *PostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var body service.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	post, err := c.PostService.UpdatePost(id, user.ID, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (c *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := c.PostService.DeletePost(id, user.ID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SchedulePost sets the delivery time and flips the post to scheduled.
func (c *PostController) SchedulePost(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var body struct {
		ScheduledFor string `json:"scheduled_for"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	at, err := time.Parse(time.RFC3339, body.ScheduledFor)
	if err != nil {
		http.Error(w, "scheduled_for must be RFC3339", http.StatusBadRequest)
		return
	}

	post, err := c.PostService.SchedulePost(id, user.ID, at)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
