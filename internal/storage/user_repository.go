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

// UserRepository handles user data persistence
type UserRepository struct {
	db *PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, password_hash, is_active, telegram_chat_id, telegram_bot_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.TelegramChatID,
		user.TelegramBotToken,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID. Returns nil without error when no user
// exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, is_active, telegram_chat_id, telegram_bot_token, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.Pool().QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email. Returns nil without error when no
// user exists, so callers can treat absence as a normal condition.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, is_active, telegram_chat_id, telegram_bot_token, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.db.Pool().QueryRow(ctx, query, email))
}

// UpdateSettings applies a partial settings update. Only non-nil fields are
// written; nil fields keep their stored values.
func (r *UserRepository) UpdateSettings(ctx context.Context, userID string, update *models.UserSettingsUpdate) (*models.User, error) {
	query := `
		UPDATE users
		SET telegram_chat_id = COALESCE($2, telegram_chat_id),
		    telegram_bot_token = COALESCE($3, telegram_bot_token),
		    updated_at = $4
		WHERE id = $1
		RETURNING id, email, password_hash, is_active, telegram_chat_id, telegram_bot_token, created_at, updated_at
	`

	return r.scanUser(r.db.Pool().QueryRow(ctx, query,
		userID,
		update.TelegramChatID,
		update.TelegramBotToken,
		time.Now(),
	))
}

// List retrieves users with pagination, newest last
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT id, email, password_hash, is_active, telegram_chat_id, telegram_bot_token, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool().Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.IsActive,
			&user.TelegramChatID,
			&user.TelegramBotToken,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// ExistsByEmail checks if a user exists by email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	err := r.db.Pool().QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence by email: %w", err)
	}

	return exists, nil
}

// scanUser scans a single user row
func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.TelegramChatID,
		&user.TelegramBotToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, return nil without error
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
