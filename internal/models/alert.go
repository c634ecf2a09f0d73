package models

import (
	"time"
)

// Alert is a stored threshold alert. AlertType is free-form text and
// thresholds are not range-checked; alerts are configuration state only and
// are never evaluated against market data by this service.
type Alert struct {
	ID        string    `json:"id" db:"id"`
	Symbol    string    `json:"symbol" db:"symbol"`
	AlertType string    `json:"alert_type" db:"alert_type"`
	Threshold float64   `json:"threshold" db:"threshold"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
