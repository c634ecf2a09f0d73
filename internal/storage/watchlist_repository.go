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

// WatchlistRepository handles watchlist item persistence
type WatchlistRepository struct {
	db *PostgresDB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *PostgresDB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create creates a new watchlist item. Duplicate symbols for the same owner
// are intentionally allowed; items are addressed by ID.
func (r *WatchlistRepository) Create(ctx context.Context, item *models.WatchlistItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	item.CreatedAt = time.Now()

	query := `
		INSERT INTO watchlist_items (id, symbol, company_name, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		item.ID,
		item.Symbol,
		item.CompanyName,
		item.OwnerID,
		item.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create watchlist item: %w", err)
	}

	return nil
}

// ListByOwner retrieves all watchlist items for a user
func (r *WatchlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.WatchlistItem, error) {
	query := `
		SELECT id, symbol, company_name, owner_id, created_at
		FROM watchlist_items
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool().Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist items: %w", err)
	}
	defer rows.Close()

	var items []*models.WatchlistItem
	for rows.Next() {
		var item models.WatchlistItem
		err := rows.Scan(
			&item.ID,
			&item.Symbol,
			&item.CompanyName,
			&item.OwnerID,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist items: %w", err)
	}

	return items, nil
}

// Delete removes a watchlist item scoped to its owner and returns the
// deleted row. Returns nil without error when no item matches both the ID
// and the owner, so another user's item is indistinguishable from a missing
// one.
func (r *WatchlistRepository) Delete(ctx context.Context, id, ownerID string) (*models.WatchlistItem, error) {
	query := `
		DELETE FROM watchlist_items
		WHERE id = $1 AND owner_id = $2
		RETURNING id, symbol, company_name, owner_id, created_at
	`

	var item models.WatchlistItem
	err := r.db.Pool().QueryRow(ctx, query, id, ownerID).Scan(
		&item.ID,
		&item.Symbol,
		&item.CompanyName,
		&item.OwnerID,
		&item.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, return nil without error
		}
		return nil, fmt.Errorf("failed to delete watchlist item: %w", err)
	}

	return &item, nil
}
