package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinaricell/storefront/internal/client/storage"
)

// создаём тестовое BoltDB хранилище во временной директории
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "client_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_SaveGetDeleteCredential(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	cred := &storage.Credential{
		Token:    "opaque-bearer-token",
		Username: "budi",
		Email:    "budi@example.com",
		Name:     "Budi Santoso",
		Role:     "USER",
		SavedAt:  time.Now().Unix(),
	}

	// До сохранения GetCredential выдает ErrCredentialNotFound
	_, err := store.GetCredential(ctx)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)

	has, err := store.HasCredential(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	// Сохраняем
	require.NoError(t, store.SaveCredential(ctx, cred))

	got, err := store.GetCredential(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cred.Token, got.Token)
	assert.Equal(t, cred.Username, got.Username)
	assert.Equal(t, cred.Email, got.Email)
	assert.Equal(t, cred.Name, got.Name)
	assert.Equal(t, cred.Role, got.Role)
	assert.Equal(t, cred.SavedAt, got.SavedAt)

	has, err = store.HasCredential(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	// Перезапись: последний записанный credential побеждает
	cred2 := &storage.Credential{Token: "newer-token", Username: "budi"}
	require.NoError(t, store.SaveCredential(ctx, cred2))

	got, err = store.GetCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newer-token", got.Token)

	// Удаляем
	require.NoError(t, store.DeleteCredential(ctx))

	_, err = store.GetCredential(ctx)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)

	// Повторное удаление — no-op, без ошибки (401-очистка и logout могут пересечься)
	require.NoError(t, store.DeleteCredential(ctx))
}
