// internal/service/user_service.go
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brandcasthq/brandcast-backend/internal/model"
	"github.com/brandcasthq/brandcast-backend/internal/repository"
)

type UserService struct {
	UserRepo repository.UserRepositoryInterface
}

// Signup creates a user on the free plan and issues an API key.
func (s *UserService) Signup(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email")
	}

	existing, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	u := &model.User{
		Email:  email,
		APIKey: "bc_" + uuid.NewString(),
		Plan:   "free",
	}
	if err := s.UserRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate resolves an API key to a user; nil when unknown.
func (s *UserService) Authenticate(apiKey string) (*model.User, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, nil
	}
	return s.UserRepo.GetByAPIKey(apiKey)
}

// LinkTelegram sets or clears the user's Telegram delivery target.
// Enabling delivery without a chat id is rejected.
func (s *UserService) LinkTelegram(userID int, chatID *int64, enabled bool) error {
	if enabled && chatID == nil {
		// the current value might already hold a chat id
		u, err := s.UserRepo.GetByID(userID)
		if err != nil {
			return err
		}
		if u.TelegramChatID == nil {
			return fmt.Errorf("cannot enable telegram delivery without a chat id")
		}
		chatID = u.TelegramChatID
	}
	return s.UserRepo.UpdateTelegram(userID, chatID, enabled)
}
