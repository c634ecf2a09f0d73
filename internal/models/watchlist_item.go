package models

import (
	"time"
)

// WatchlistItem represents a stock a user is tracking. Duplicate symbols per
// owner are allowed; items are addressed by ID.
type WatchlistItem struct {
	ID          string    `json:"id" db:"id"`
	Symbol      string    `json:"symbol" db:"symbol"`
	CompanyName string    `json:"company_name" db:"company_name"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
