package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/manapixels/stock-screener/internal/models"
)

// AlertRepository handles alert persistence
type AlertRepository struct {
	db *PostgresDB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *PostgresDB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create creates a new alert
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}

	alert.CreatedAt = time.Now()

	query := `
		INSERT INTO alerts (id, symbol, alert_type, threshold, is_active, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		alert.ID,
		alert.Symbol,
		alert.AlertType,
		alert.Threshold,
		alert.IsActive,
		alert.OwnerID,
		alert.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// ListByOwner retrieves all alerts for a user
func (r *AlertRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Alert, error) {
	query := `
		SELECT id, symbol, alert_type, threshold, is_active, owner_id, created_at
		FROM alerts
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool().Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		var alert models.Alert
		err := rows.Scan(
			&alert.ID,
			&alert.Symbol,
			&alert.AlertType,
			&alert.Threshold,
			&alert.IsActive,
			&alert.OwnerID,
			&alert.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		alerts = append(alerts, &alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return alerts, nil
}

// Delete removes an alert scoped to its owner and returns the deleted row.
// Returns nil without error when no alert matches both the ID and the owner.
func (r *AlertRepository) Delete(ctx context.Context, id, ownerID string) (*models.Alert, error) {
	query := `
		DELETE FROM alerts
		WHERE id = $1 AND owner_id = $2
		RETURNING id, symbol, alert_type, threshold, is_active, owner_id, created_at
	`

	var alert models.Alert
	err := r.db.Pool().QueryRow(ctx, query, id, ownerID).Scan(
		&alert.ID,
		&alert.Symbol,
		&alert.AlertType,
		&alert.Threshold,
		&alert.IsActive,
		&alert.OwnerID,
		&alert.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, return nil without error
		}
		return nil, fmt.Errorf("failed to delete alert: %w", err)
	}

	return &alert, nil
}
