package storage

import "errors"

// Common client storage errors
var (
	// ErrCredentialNotFound indicates that no session credential exists
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
