// internal/controller/user_controller_test.go
package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brandcasthq/brandcast-backend/internal/model"
	"github.com/brandcasthq/brandcast-backend/internal/service"
)

func TestSignupReturnsAPIKey(t *testing.T) {
	ctrl := &UserController{UserService: &service.UserService{UserRepo: newStubUserRepo()}}

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	ctrl.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	key, _ := resp["api_key"].(string)
	if !strings.HasPrefix(key, "bc_") {
		t.Errorf("expected an api_key in the response, got %v", resp)
	}
	if resp["plan"] != "free" {
		t.Errorf("expected free plan, got %v", resp["plan"])
	}
}

func TestSignupRejectsBadInput(t *testing.T) {
	ctrl := &UserController{UserService: &service.UserService{UserRepo: newStubUserRepo()}}

	for _, body := range []string{`not json`, `{"email":"nope"}`} {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.Signup(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	users := &service.UserService{UserRepo: newStubUserRepo(
		&model.User{ID: 1, Email: "alice@example.com", APIKey: "bc_valid"},
	)}

	var seen *model.User
	handler := RequireAuth(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	// no credentials
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a key, got %d", rec.Code)
	}

	// bad key
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-API-Key", "bc_bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a bogus key, got %d", rec.Code)
	}

	// X-API-Key header
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-API-Key", "bc_valid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with a valid key, got %d", rec.Code)
	}
	if seen == nil || seen.ID != 1 {
		t.Errorf("expected user 1 in the request context, got %v", seen)
	}

	// Authorization bearer token
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bc_valid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with a bearer token, got %d", rec.Code)
	}
}
