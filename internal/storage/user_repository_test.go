package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manapixels/stock-screener/internal/models"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testContext(t)

	user := createTestUser(t, db)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.Email, byID.Email)
	assert.True(t, byID.IsActive)

	byEmail, err := repo.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_GetByEmail_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testContext(t)

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user, "missing user should be nil, not an error")
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testContext(t)

	user := createTestUser(t, db)

	exists, err := repo.ExistsByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateSettings(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testContext(t)

	user := createTestUser(t, db)

	chatID := "123456"
	updated, err := repo.UpdateSettings(ctx, user.ID, &models.UserSettingsUpdate{
		TelegramChatID: &chatID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.TelegramChatID)
	assert.Equal(t, chatID, *updated.TelegramChatID)
	assert.Nil(t, updated.TelegramBotToken)

	// A second partial update must not clobber the chat ID.
	token := "bot-token"
	updated, err = repo.UpdateSettings(ctx, user.ID, &models.UserSettingsUpdate{
		TelegramBotToken: &token,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.TelegramChatID)
	assert.Equal(t, chatID, *updated.TelegramChatID)
	require.NotNil(t, updated.TelegramBotToken)
	assert.Equal(t, token, *updated.TelegramBotToken)
}

func TestUserRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testContext(t)

	first := createTestUser(t, db)
	second := createTestUser(t, db)

	users, err := repo.List(ctx, 1000, 0)
	require.NoError(t, err)

	found := map[string]bool{}
	for _, u := range users {
		found[u.ID] = true
	}
	assert.True(t, found[first.ID])
	assert.True(t, found[second.ID])
}
