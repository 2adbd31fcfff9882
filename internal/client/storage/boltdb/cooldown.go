package boltdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/sinaricell/storefront/internal/client/storage"
)

// Значение cooldown-записи — десятичная строка абсолютного момента истечения
// в миллисекундах от эпохи. Ровно в таком виде его хранил браузерный фронтенд,
// и ровно так нечитаемое значение трактуется как истекшее, а не как ошибка.

// SetCooldown records the resend-allowed instant for identifier.
// Overwrites any existing record for the same identifier.
func (s *Storage) SetCooldown(ctx context.Context, identifier string, seconds int) error {
	key := storage.NormalizeIdentifier(identifier)
	expiry := time.Now().UnixMilli() + int64(seconds)*1000

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCooldowns)
		if bucket == nil {
			return fmt.Errorf("cooldowns bucket not found")
		}

		value := strconv.FormatInt(expiry, 10)
		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save cooldown: %w", err)
		}

		return nil
	})
}

// RemainingSeconds returns whole seconds until the cooldown for identifier
// expires, rounded up. Absent, expired or malformed records yield 0.
func (s *Storage) RemainingSeconds(ctx context.Context, identifier string) (int, error) {
	key := storage.NormalizeIdentifier(identifier)
	var remaining int

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCooldowns)
		if bucket == nil {
			return fmt.Errorf("cooldowns bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return nil
		}

		expiry, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			// Испорченная запись трактуется как истекшая
			return nil
		}

		diffMs := expiry - time.Now().UnixMilli()
		if diffMs <= 0 {
			return nil
		}

		// Округляем вверх: 1 мс остатка — это еще одна видимая секунда
		remaining = int((diffMs + 999) / 1000)
		return nil
	})

	if err != nil {
		return 0, err
	}

	return remaining, nil
}

// ClearCooldown removes the cooldown record for identifier; idempotent
func (s *Storage) ClearCooldown(ctx context.Context, identifier string) error {
	key := storage.NormalizeIdentifier(identifier)

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCooldowns)
		if bucket == nil {
			return fmt.Errorf("cooldowns bucket not found")
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete cooldown: %w", err)
		}

		return nil
	})
}
