// internal/controller/middleware.go
package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brandcasthq/brandcast-backend/internal/model"
	"github.com/brandcasthq/brandcast-backend/internal/service"
)

type ctxKey int

const userKey ctxKey = 0

// CurrentUser pulls the authenticated user set by RequireAuth.
func CurrentUser(r *http.Request) *model.User {
	u, _ := r.Context().Value(userKey).(*model.User)
	return u
}

// RequireAuth resolves the API key from the Authorization bearer token or
// the X-API-Key header and rejects the request when it is unknown.
func RequireAuth(users *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					key = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			user, err := users.Authenticate(key)
			if err != nil {
				http.Error(w, "auth lookup failed", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "invalid or missing API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
