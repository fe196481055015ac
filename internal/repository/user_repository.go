package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/model"
)

type UserRepositoryInterface interface {
	Create(u *model.User) error
	GetByID(id int) (*model.User, error)
	GetByAPIKey(key string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	UpdateTelegram(userID int, chatID *int64, enabled bool) error
	UpdatePlan(userID int, plan string) error
}

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) Create(u *model.User) error {
	u.CreatedAt = time.Now()
	if u.Plan == "" {
		u.Plan = "free"
	}
	query := `
        INSERT INTO users (email, api_key, plan, telegram_chat_id, telegram_enabled, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, u.Email, u.APIKey, u.Plan, u.TelegramChatID, u.TelegramEnabled, u.CreatedAt).Scan(&u.ID)
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
	query := `
        SELECT id, email, api_key, plan, telegram_chat_id, telegram_enabled, created_at
        FROM users WHERE id=$1
    `
	var u model.User
	err := r.DB.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.APIKey, &u.Plan, &u.TelegramChatID, &u.TelegramEnabled, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewUserNotFound(id)
		}
		return nil, err
	}
	return &u, nil
}

// GetByAPIKey resolves the user for an incoming request. Returns nil
// without error when the key is unknown.
func (r *UserRepository) GetByAPIKey(key string) (*model.User, error) {
	query := `
        SELECT id, email, api_key, plan, telegram_chat_id, telegram_enabled, created_at
        FROM users WHERE api_key=$1
    `
	var u model.User
	err := r.DB.QueryRow(query, key).Scan(&u.ID, &u.Email, &u.APIKey, &u.Plan, &u.TelegramChatID, &u.TelegramEnabled, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	query := `
        SELECT id, email, api_key, plan, telegram_chat_id, telegram_enabled, created_at
        FROM users WHERE email=$1
    `
	var u model.User
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Email, &u.APIKey, &u.Plan, &u.TelegramChatID, &u.TelegramEnabled, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateTelegram(userID int, chatID *int64, enabled bool) error {
	query := `UPDATE users SET telegram_chat_id=$1, telegram_enabled=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, chatID, enabled, userID)
	return err
}

func (r *UserRepository) UpdatePlan(userID int, plan string) error {
	query := `UPDATE users SET plan=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, plan, userID)
	return err
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
