package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepository_UpsertInsertsThenUpdates(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	first, err := repo.Upsert(ctx, owner.ID, "AAPL", "watch earnings")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "watch earnings", first.Note)

	second, err := repo.Upsert(ctx, owner.ID, "AAPL", "bought at 180")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID, "second upsert must update the same row")
	assert.Equal(t, "bought at 180", second.Note)

	got, err := repo.GetByOwnerAndSymbol(ctx, owner.ID, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bought at 180", got.Note)
}

func TestNoteRepository_NotesAreScopedPerOwnerAndSymbol(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	_, err := repo.Upsert(ctx, owner.ID, "AAPL", "mine")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, other.ID, "AAPL", "theirs")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, owner.ID, "MSFT", "different symbol")
	require.NoError(t, err)

	got, err := repo.GetByOwnerAndSymbol(ctx, owner.ID, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mine", got.Note)
}

func TestNoteRepository_GetMissingNote(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	got, err := repo.GetByOwnerAndSymbol(ctx, owner.ID, "NFLX")
	require.NoError(t, err)
	assert.Nil(t, got, "missing note should be nil, not an error")
}
