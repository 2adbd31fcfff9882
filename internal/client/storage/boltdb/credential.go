package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/sinaricell/storefront/internal/client/storage"
)

var credentialKey = []byte("current")

// SaveCredential stores the session credential, overwriting any previous one
func (s *Storage) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredential)
		if bucket == nil {
			return fmt.Errorf("credential bucket not found")
		}

		// Сериализуем данные в JSON
		data, err := json.Marshal(cred)
		if err != nil {
			return fmt.Errorf("failed to marshal credential: %w", err)
		}

		if err := bucket.Put(credentialKey, data); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}

		return nil
	})
}

// GetCredential retrieves the stored session credential
func (s *Storage) GetCredential(ctx context.Context) (*storage.Credential, error) {
	var cred *storage.Credential

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredential)
		if bucket == nil {
			return fmt.Errorf("credential bucket not found")
		}

		data := bucket.Get(credentialKey)
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		cred = &storage.Credential{}
		if err := json.Unmarshal(data, cred); err != nil {
			return fmt.Errorf("failed to unmarshal credential: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return cred, nil
}

// DeleteCredential removes the stored credential.
// Удаление отсутствующей записи — не ошибка: 401-очистка и logout могут
// наслоиться друг на друга, второй вызов должен быть no-op.
func (s *Storage) DeleteCredential(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredential)
		if bucket == nil {
			return fmt.Errorf("credential bucket not found")
		}

		if err := bucket.Delete(credentialKey); err != nil {
			return fmt.Errorf("failed to delete credential: %w", err)
		}

		return nil
	})
}

// HasCredential checks whether a session credential is present
func (s *Storage) HasCredential(ctx context.Context) (bool, error) {
	_, err := s.GetCredential(ctx)
	if err != nil {
		if err == storage.ErrCredentialNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
