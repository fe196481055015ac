// internal/model/user.go
package model

import "time"

type User struct {
	ID              int       `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	APIKey          string    `db:"api_key" json:"-"`
	Plan            string    `db:"plan" json:"plan"` // free, pro
	TelegramChatID  *int64    `db:"telegram_chat_id" json:"telegram_chat_id,omitempty"`
	TelegramEnabled bool      `db:"telegram_enabled" json:"telegram_enabled"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
