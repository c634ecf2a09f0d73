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

// NoteRepository handles stock note persistence
type NoteRepository struct {
	db *PostgresDB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *PostgresDB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Upsert writes the note for (owner, symbol): updates the existing row when
// one exists, inserts otherwise. The one-note-per-symbol rule lives here,
// not in a storage constraint.
func (r *NoteRepository) Upsert(ctx context.Context, ownerID, symbol, note string) (*models.StockNote, error) {
	existing, err := r.GetByOwnerAndSymbol(ctx, ownerID, symbol)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		query := `
			UPDATE stock_notes
			SET note = $2, updated_at = $3
			WHERE id = $1
			RETURNING id, symbol, note, owner_id, created_at, updated_at
		`

		return r.scanNote(r.db.Pool().QueryRow(ctx, query, existing.ID, note, time.Now()))
	}

	now := time.Now()
	query := `
		INSERT INTO stock_notes (id, symbol, note, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, symbol, note, owner_id, created_at, updated_at
	`

	return r.scanNote(r.db.Pool().QueryRow(ctx, query,
		uuid.New().String(),
		symbol,
		note,
		ownerID,
		now,
		now,
	))
}

// GetByOwnerAndSymbol retrieves a user's note for a symbol. Returns nil
// without error when no note exists.
func (r *NoteRepository) GetByOwnerAndSymbol(ctx context.Context, ownerID, symbol string) (*models.StockNote, error) {
	query := `
		SELECT id, symbol, note, owner_id, created_at, updated_at
		FROM stock_notes
		WHERE owner_id = $1 AND symbol = $2
	`

	return r.scanNote(r.db.Pool().QueryRow(ctx, query, ownerID, symbol))
}

// scanNote scans a single note row
func (r *NoteRepository) scanNote(row pgx.Row) (*models.StockNote, error) {
	var note models.StockNote

	err := row.Scan(
		&note.ID,
		&note.Symbol,
		&note.Note,
		&note.OwnerID,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, return nil without error
		}
		return nil, fmt.Errorf("failed to get stock note: %w", err)
	}

	return &note, nil
}
