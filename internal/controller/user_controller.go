// internal/controller/user_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/brandcasthq/brandcast-backend/internal/service"
)

type UserController struct {
	UserService *service.UserService
}

func (c *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	user, err := c.UserService.Signup(body.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// the API key is returned exactly once, at signup
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      user.ID,
		"email":   user.Email,
		"plan":    user.Plan,
		"api_key": user.APIKey,
	})
}

func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CurrentUser(r))
}

func (c *UserController) UpdateTelegram(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	var body struct {
		ChatID  *int64 `json:"chat_id"`
		Enabled bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := c.UserService.LinkTelegram(user.ID, body.ChatID, body.Enabled); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"telegram_enabled": body.Enabled,
	})
}
