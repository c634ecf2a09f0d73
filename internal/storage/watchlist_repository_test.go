package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manapixels/stock-screener/internal/models"
)

func TestWatchlistRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	item := &models.WatchlistItem{
		Symbol:      "AAPL",
		CompanyName: "Apple Inc",
		OwnerID:     owner.ID,
	}
	require.NoError(t, repo.Create(ctx, item))
	assert.NotEmpty(t, item.ID)

	items, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AAPL", items[0].Symbol)
	assert.Equal(t, "Apple Inc", items[0].CompanyName)
}

func TestWatchlistRepository_DuplicateSymbolsAllowed(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	for i := 0; i < 2; i++ {
		item := &models.WatchlistItem{Symbol: "MSFT", CompanyName: "Microsoft", OwnerID: owner.ID}
		require.NoError(t, repo.Create(ctx, item))
	}

	items, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestWatchlistRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	item := &models.WatchlistItem{Symbol: "GOOG", CompanyName: "Alphabet", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, item))

	deleted, err := repo.Delete(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, item.ID, deleted.ID)

	// Deleting again is a no-op, not an error.
	deleted, err = repo.Delete(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestWatchlistRepository_DeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	item := &models.WatchlistItem{Symbol: "TSLA", CompanyName: "Tesla", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, item))

	// Another user cannot delete it, and cannot tell it exists.
	deleted, err := repo.Delete(ctx, item.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	items, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
