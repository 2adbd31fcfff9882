package auth

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinaricell/storefront/internal/client/api"
	"github.com/sinaricell/storefront/internal/client/storage"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// mockAPIClient implements apiClient for testing
type mockAPIClient struct {
	loginResp    *pkgapi.UserResponse
	loginErr     error
	googleResp   *pkgapi.UserResponse
	googleErr    error
	registerResp *pkgapi.UserResponse
	registerErr  error
	logoutErr    error
	logoutCalls  int
}

func (m *mockAPIClient) Login(ctx context.Context, identifier, password string) (*pkgapi.UserResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockAPIClient) GoogleLogin(ctx context.Context, code string) (*pkgapi.UserResponse, error) {
	return m.googleResp, m.googleErr
}

func (m *mockAPIClient) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error) {
	return m.registerResp, m.registerErr
}

func (m *mockAPIClient) Logout(ctx context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}

// mockCredentialStorage implements storage.CredentialStorage for testing
type mockCredentialStorage struct {
	cred      *storage.Credential
	saveErr   error
	deleteErr error
}

func (m *mockCredentialStorage) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *cred
	m.cred = &copied
	return nil
}

func (m *mockCredentialStorage) GetCredential(ctx context.Context) (*storage.Credential, error) {
	if m.cred == nil {
		return nil, storage.ErrCredentialNotFound
	}
	return m.cred, nil
}

func (m *mockCredentialStorage) DeleteCredential(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.cred = nil
	return nil
}

func (m *mockCredentialStorage) HasCredential(ctx context.Context) (bool, error) {
	return m.cred != nil, nil
}

func TestService_Login_SavesCredential(t *testing.T) {
	client := &mockAPIClient{
		loginResp: &pkgapi.UserResponse{
			Username: "budi",
			Email:    "budi@example.com",
			Name:     "Budi",
			Role:     "ADMIN",
			Token:    "issued-token",
		},
	}
	creds := &mockCredentialStorage{}
	service := NewService(client, creds)

	result, err := service.Login(context.Background(), "budi", "Secret#123")
	require.NoError(t, err)
	assert.Equal(t, "budi", result.Username)
	assert.Equal(t, "ADMIN", result.Role)

	require.NotNil(t, creds.cred)
	assert.Equal(t, "issued-token", creds.cred.Token)
	assert.Equal(t, "budi@example.com", creds.cred.Email)
	assert.NotZero(t, creds.cred.SavedAt)
}

func TestService_Login_NotVerified(t *testing.T) {
	client := &mockAPIClient{
		loginErr: fmt.Errorf("login request failed: %w", &api.Error{
			StatusCode: http.StatusForbidden,
			Message:    "Account not verified. Please check your email.",
		}),
	}
	creds := &mockCredentialStorage{}
	service := NewService(client, creds)

	_, err := service.Login(context.Background(), "budi", "Secret#123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountNotVerified)
	assert.Nil(t, creds.cred, "credential must not be saved on failed login")
}

func TestService_Login_InvalidInput(t *testing.T) {
	service := NewService(&mockAPIClient{}, &mockCredentialStorage{})

	_, err := service.Login(context.Background(), "", "Secret#123")
	assert.Error(t, err)

	_, err = service.Login(context.Background(), "ab", "Secret#123")
	assert.Error(t, err)

	_, err = service.Login(context.Background(), "budi", "")
	assert.Error(t, err)

	// Невалидный email тоже отклоняется до сети
	_, err = service.Login(context.Background(), "not@valid", "Secret#123")
	assert.Error(t, err)
}

func TestService_Login_NoTokenInResponse(t *testing.T) {
	client := &mockAPIClient{loginResp: &pkgapi.UserResponse{Username: "budi"}}
	service := NewService(client, &mockCredentialStorage{})

	_, err := service.Login(context.Background(), "budi", "Secret#123")
	assert.Error(t, err)
}

func TestService_GoogleLogin_SavesCredential(t *testing.T) {
	client := &mockAPIClient{
		googleResp: &pkgapi.UserResponse{
			Username: "budi",
			Token:    "google-issued-token",
		},
	}
	creds := &mockCredentialStorage{}
	service := NewService(client, creds)

	_, err := service.GoogleLogin(context.Background(), "oauth-code")
	require.NoError(t, err)
	require.NotNil(t, creds.cred)
	assert.Equal(t, "google-issued-token", creds.cred.Token)
}

func TestService_Register_NoCredentialSaved(t *testing.T) {
	client := &mockAPIClient{
		registerResp: &pkgapi.UserResponse{
			Username: "budi",
			Email:    "budi@example.com",
			Name:     "Budi",
		},
	}
	creds := &mockCredentialStorage{}
	service := NewService(client, creds)

	result, err := service.Register(context.Background(), pkgapi.RegisterRequest{
		Email:    "budi@example.com",
		Username: "budi",
		Password: "Secret#123",
		Name:     "Budi",
	})
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", result.Email)

	// Регистрация не логинит: токена нет, credential не сохраняется
	assert.Nil(t, creds.cred)
}

func TestService_Register_ValidatesPasswordPolicy(t *testing.T) {
	service := NewService(&mockAPIClient{}, &mockCredentialStorage{})

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Ab#1"},
		{"no uppercase", "secret#123"},
		{"no digit", "Secret#abc"},
		{"no special", "Secret1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), pkgapi.RegisterRequest{
				Email:    "budi@example.com",
				Username: "budi",
				Password: tt.password,
				Name:     "Budi",
			})
			assert.Error(t, err)
		})
	}
}

func TestService_Logout_BestEffort(t *testing.T) {
	// Сервер недоступен — локальный credential все равно удаляется
	client := &mockAPIClient{logoutErr: fmt.Errorf("connection refused")}
	creds := &mockCredentialStorage{cred: &storage.Credential{Token: "tok"}}
	service := NewService(client, creds)

	err := service.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.logoutCalls)
	assert.Nil(t, creds.cred)
}

func TestService_Logout_WithoutSession(t *testing.T) {
	// Без сессии сервер не дергается, удаление — no-op
	client := &mockAPIClient{}
	service := NewService(client, &mockCredentialStorage{})

	err := service.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, client.logoutCalls)
}
