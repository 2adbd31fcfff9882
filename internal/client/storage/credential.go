package storage

import "context"

// CredentialStorage defines interface for storing the bearer credential on client.
// At most one credential exists at a time (last-write-wins), mirroring the
// single browser-profile session of the original storefront.
type CredentialStorage interface {
	// SaveCredential stores the credential, overwriting any previous one
	SaveCredential(ctx context.Context, cred *Credential) error

	// GetCredential retrieves the stored credential
	// Returns ErrCredentialNotFound if no credential exists
	GetCredential(ctx context.Context) (*Credential, error)

	// DeleteCredential removes the stored credential (logout / 401 cleanup).
	// Deleting an absent credential is not an error.
	DeleteCredential(ctx context.Context) error

	// HasCredential checks whether a credential is present
	HasCredential(ctx context.Context) (bool, error)
}

// Credential represents the authenticated session in storage.
// Token — непрозрачная строка, выданная сервером; клиент ее не разбирает
// (кроме best-effort чтения claims для команды status).
type Credential struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	SavedAt  int64  `json:"saved_at"` // unix seconds, момент сохранения
}
