package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinaricell/storefront/internal/client/storage"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// mockCredentialStore implements CredentialStore for testing
type mockCredentialStore struct {
	cred    *storage.Credential
	deletes int
}

func (m *mockCredentialStore) GetCredential(ctx context.Context) (*storage.Credential, error) {
	if m.cred == nil {
		return nil, storage.ErrCredentialNotFound
	}
	return m.cred, nil
}

func (m *mockCredentialStore) DeleteCredential(ctx context.Context) error {
	m.deletes++
	m.cred = nil
	return nil
}

// envelope собирает ответ в конверте {data, errors, paging}
func envelope(t *testing.T, data any, paging *pkgapi.Paging) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	body, err := json.Marshal(pkgapi.Envelope{Data: raw, Paging: paging})
	require.NoError(t, err)
	return body
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080", nil)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// Публичный endpoint не получает Authorization даже при сохраненном credential
func TestClient_Login_NeverCarriesCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var req pkgapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "budi", req.Username)
		assert.Empty(t, req.Email)
		assert.Equal(t, "Secret#123", req.Password)

		_, _ = w.Write(envelope(t, pkgapi.UserResponse{
			Username: "budi",
			Email:    "budi@example.com",
			Name:     "Budi",
			Role:     "USER",
			Token:    "fresh-token",
		}, nil))
	}))
	defer server.Close()

	creds := &mockCredentialStore{cred: &storage.Credential{Token: "stale-token"}}
	client := NewClient(server.URL, creds)

	resp, err := client.Login(context.Background(), "budi", "Secret#123")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.Token)
	assert.Equal(t, "budi@example.com", resp.Email)
}

// Идентификатор с '@' уходит в поле email
func TestClient_Login_EmailIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "budi@example.com", req.Email)
		assert.Empty(t, req.Username)

		_, _ = w.Write(envelope(t, pkgapi.UserResponse{Token: "t"}, nil))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Login(context.Background(), "budi@example.com", "Secret#123")
	require.NoError(t, err)
}

// Защищенный endpoint несет credential тогда и только тогда, когда он сохранен
func TestClient_SearchProducts_CredentialAttachment(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write(envelope(t, []pkgapi.ProductResponse{}, &pkgapi.Paging{CurrentPage: 1, TotalPage: 1, Size: 10}))
	}))
	defer server.Close()

	// Без credential — без заголовка
	client := NewClient(server.URL, &mockCredentialStore{})
	_, _, err := client.SearchProducts(context.Background(), pkgapi.SearchProductsRequest{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	// С credential — Bearer заголовок
	client = NewClient(server.URL, &mockCredentialStore{cred: &storage.Credential{Token: "tok-123"}})
	_, paging, err := client.SearchProducts(context.Background(), pkgapi.SearchProductsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	require.NotNil(t, paging)
	assert.Equal(t, 1, paging.CurrentPage)
}

func TestClient_SearchProducts_QueryString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "25", q.Get("size"))
		assert.Equal(t, "APPLE", q.Get("brand"))
		assert.Equal(t, "LCD", q.Get("category"))
		assert.Equal(t, "true", q.Get("in_stock_only"))
		assert.Equal(t, "price", q.Get("sort_by"))
		assert.Empty(t, q.Get("name"))

		_, _ = w.Write(envelope(t, []pkgapi.ProductResponse{{ID: 7, Name: "iPhone 13 LCD"}}, nil))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	products, _, err := client.SearchProducts(context.Background(), pkgapi.SearchProductsRequest{
		Brand:       "APPLE",
		Category:    "LCD",
		InStockOnly: true,
		SortBy:      "price",
		Page:        2,
		Size:        25,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(7), products[0].ID)
}

// 401 на аутентифицированном вызове удаляет credential ровно один раз
func TestClient_UnauthorizedClearsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"errors": "Unauthorized"})
	}))
	defer server.Close()

	creds := &mockCredentialStore{cred: &storage.Credential{Token: "dead-token"}}
	client := NewClient(server.URL, creds)

	_, _, err := client.SearchProducts(context.Background(), pkgapi.SearchProductsRequest{})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, creds.deletes)
	assert.Nil(t, creds.cred)

	// Повторный 401 уже без credential — удаление не повторяется
	_, _, err = client.SearchProducts(context.Background(), pkgapi.SearchProductsRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, creds.deletes)
}

func TestClient_ResendVerification_ParamKey(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write(envelope(t, pkgapi.ResendVerificationResponse{
			Email:   "budi@example.com",
			Message: "Verification email sent",
		}, nil))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	// По username
	resp, err := client.ResendVerification(context.Background(), "budi")
	require.NoError(t, err)
	assert.Equal(t, []string{"budi"}, gotQuery["username"])
	assert.Equal(t, "budi@example.com", resp.Email)

	// По email
	_, err = client.ResendVerification(context.Background(), "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"budi@example.com"}, gotQuery["email"])
}

func TestClient_ErrorExtraction(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
		statusCode  int
	}{
		{
			name:        "envelope errors field",
			statusCode:  http.StatusBadRequest,
			body:        `{"errors":"Account not verified"}`,
			expectedMsg: "Account not verified",
		},
		{
			name:        "validation detail list embedded as string",
			statusCode:  http.StatusBadRequest,
			body:        `{"errors":"[{\"path\":\"email\",\"message\":\"Email is required\"},{\"path\":\"password\",\"message\":\"Password Minimum 8 Characters\"}]"}`,
			expectedMsg: "email: Email is required; password: Password Minimum 8 Characters",
		},
		{
			name:        "message field fallback",
			statusCode:  http.StatusConflict,
			body:        `{"message":"product already exists"}`,
			expectedMsg: "product already exists",
		},
		{
			name:        "raw body fallback",
			statusCode:  http.StatusBadGateway,
			body:        "Bad Gateway",
			expectedMsg: "Bad Gateway",
		},
		{
			name:        "empty body falls back to status text",
			statusCode:  http.StatusServiceUnavailable,
			body:        "",
			expectedMsg: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			err := client.Verify(context.Background(), "some-token")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, apiErr.Message)
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	assert.True(t, isPublicPath("/auth/login"))
	assert.True(t, isPublicPath("/users/login"))
	assert.True(t, isPublicPath("/users"))
	assert.True(t, isPublicPath("/auth/verify"))
	assert.True(t, isPublicPath("/auth/resend-verify"))
	assert.True(t, isPublicPath("/auth/forgot-password"))

	assert.False(t, isPublicPath("/products"))
	assert.False(t, isPublicPath("/users/logout"))
}
