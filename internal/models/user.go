// Package models provides data models for the stock screener system.
package models

import (
	"time"
)

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID               string    `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	TelegramChatID   *string   `json:"telegram_chat_id,omitempty" db:"telegram_chat_id"`
	TelegramBotToken *string   `json:"telegram_bot_token,omitempty" db:"telegram_bot_token"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// UserSettingsUpdate carries a partial settings update. Nil fields are left
// untouched.
type UserSettingsUpdate struct {
	TelegramChatID   *string `json:"telegram_chat_id,omitempty"`
	TelegramBotToken *string `json:"telegram_bot_token,omitempty"`
}
