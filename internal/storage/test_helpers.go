package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/manapixels/stock-screener/internal/config"
	"github.com/manapixels/stock-screener/internal/models"
)

// testContext creates a context with timeout for tests
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// newTestDB connects to the local test database, skipping the test when
// Postgres is unavailable. The schema is expected to be migrated already.
func newTestDB(t *testing.T) *PostgresDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	db, err := NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		t.Skipf("Skipping test - Postgres not available: %v", err)
		return nil
	}
	t.Cleanup(db.Close)

	return db
}

// createTestUser inserts a user with a unique email and removes it (and its
// dependent rows, via cascade) when the test finishes.
func createTestUser(t *testing.T, db *PostgresDB) *models.User {
	t.Helper()

	ctx := testContext(t)
	repo := NewUserRepository(db)

	user := &models.User{
		Email:        fmt.Sprintf("test-%s@example.com", uuid.New().String()),
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("createTestUser: Create() error = %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = db.Pool().Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	})

	return user
}
