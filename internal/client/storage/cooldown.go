package storage

import (
	"context"
	"strings"
)

// CooldownStorage defines interface for the persistent resend-cooldown records.
// A record maps a normalized identifier to an absolute expiry instant; creating
// a new record for the same identifier overwrites the old one.
type CooldownStorage interface {
	// SetCooldown records that a resend for identifier is allowed again
	// in `seconds` from now. Overwrites any existing record.
	SetCooldown(ctx context.Context, identifier string, seconds int) error

	// RemainingSeconds returns the whole seconds left until the cooldown
	// expires, never negative. Absent, expired or malformed records yield 0.
	RemainingSeconds(ctx context.Context, identifier string) (int, error)

	// ClearCooldown removes the record; clearing an absent record is a no-op
	ClearCooldown(ctx context.Context, identifier string) error
}

// EmailCacheStorage defines interface for the identifier→email resolution cache.
// Пользователь может логиниться по username, а cooldown на сервере считается
// по email — после первого успешного resend серверный email запоминается здесь.
type EmailCacheStorage interface {
	// SaveResolvedEmail remembers the server-reported email for identifier
	SaveResolvedEmail(ctx context.Context, identifier, email string) error

	// GetResolvedEmail returns the cached email or "" when none is cached
	GetResolvedEmail(ctx context.Context, identifier string) (string, error)
}

// NormalizeIdentifier приводит идентификатор к каноническому ключу хранилища:
// обрезает пробелы и опускает регистр (email и username нечувствительны к нему)
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
