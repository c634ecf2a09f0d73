package models

import (
	"time"
)

// StockNote holds a user's free-text note for a symbol. One note per
// (owner, symbol), maintained by the repository upsert rather than a
// storage constraint.
type StockNote struct {
	ID        string    `json:"id" db:"id"`
	Symbol    string    `json:"symbol" db:"symbol"`
	Note      string    `json:"note" db:"note"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
