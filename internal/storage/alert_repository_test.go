package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manapixels/stock-screener/internal/models"
)

func TestAlertRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	alert := &models.Alert{
		Symbol:    "AAPL",
		AlertType: "price_above",
		Threshold: 200.5,
		IsActive:  true,
		OwnerID:   owner.ID,
	}
	require.NoError(t, repo.Create(ctx, alert))
	assert.NotEmpty(t, alert.ID)

	alerts, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "price_above", alerts[0].AlertType)
	assert.Equal(t, 200.5, alerts[0].Threshold)
	assert.True(t, alerts[0].IsActive)
}

func TestAlertRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	alert := &models.Alert{Symbol: "MSFT", AlertType: "rsi_below", Threshold: 30, IsActive: true, OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, alert))

	deleted, err := repo.Delete(ctx, alert.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, alert.ID, deleted.ID)

	deleted, err = repo.Delete(ctx, alert.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestAlertRepository_DeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	alert := &models.Alert{Symbol: "TSLA", AlertType: "price_below", Threshold: 150, IsActive: true, OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, alert))

	deleted, err := repo.Delete(ctx, alert.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	alerts, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestAlertRepository_CascadeOnUserDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := testContext(t)

	owner := createTestUser(t, db)

	alert := &models.Alert{Symbol: "NVDA", AlertType: "price_above", Threshold: 1000, IsActive: true, OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, alert))

	_, err := db.Pool().Exec(ctx, `DELETE FROM users WHERE id = $1`, owner.ID)
	require.NoError(t, err)

	alerts, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts, "deleting a user must cascade to their alerts")
}
