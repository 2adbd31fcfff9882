package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/sinaricell/storefront/internal/client/storage"
)

// SaveResolvedEmail remembers the server-reported email address for identifier
func (s *Storage) SaveResolvedEmail(ctx context.Context, identifier, email string) error {
	key := storage.NormalizeIdentifier(identifier)

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEmailCache)
		if bucket == nil {
			return fmt.Errorf("email cache bucket not found")
		}

		if err := bucket.Put([]byte(key), []byte(email)); err != nil {
			return fmt.Errorf("failed to save resolved email: %w", err)
		}

		return nil
	})
}

// GetResolvedEmail returns the cached email for identifier, or "" when absent
func (s *Storage) GetResolvedEmail(ctx context.Context, identifier string) (string, error) {
	key := storage.NormalizeIdentifier(identifier)
	var email string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEmailCache)
		if bucket == nil {
			return fmt.Errorf("email cache bucket not found")
		}

		if data := bucket.Get([]byte(key)); data != nil {
			email = string(data)
		}
		return nil
	})

	if err != nil {
		return "", err
	}

	return email, nil
}
