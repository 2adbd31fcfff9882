package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sinaricell/storefront/internal/client/storage"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// CredentialStore — минимальный срез хранилища, нужный клиенту:
// прочитать credential перед запросом и удалить его при 401
type CredentialStore interface {
	GetCredential(ctx context.Context) (*storage.Credential, error)
	DeleteCredential(ctx context.Context) error
}

// publicPaths перечисляет endpoints, на которые credential не прикрепляется
// никогда, даже если он сохранен — чтобы протухший токен не утекал
// в публичные флоу. Register — это POST /users, поэтому и он здесь.
var publicPaths = []string{
	"/auth/login",
	"/auth/google",
	"/auth/verify",
	"/auth/resend-verify",
	"/auth/forgot-password",
	"/auth/reset-password",
	"/users/login",
}

// Client представляет HTTP клиент для взаимодействия с Sinari Cell API.
// Единственная точка выхода в сеть: здесь прикрепляется bearer credential,
// здесь же обрабатывается 401 (удаление credential) и разбор конверта ошибок.
type Client struct {
	httpClient *http.Client
	creds      CredentialStore
	baseURL    string
}

// NewClient создает новый API клиент.
// creds может быть nil — тогда клиент работает только с публичными endpoints.
func NewClient(baseURL string, creds CredentialStore) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login выполняет аутентификацию. Идентификатор с '@' уходит в поле email,
// без — в поле username; ровно одно из двух всегда заполнено.
func (c *Client) Login(ctx context.Context, identifier, password string) (*pkgapi.UserResponse, error) {
	req := pkgapi.LoginRequest{Password: password}
	if isEmailIdentifier(identifier) {
		req.Email = identifier
	} else {
		req.Username = identifier
	}

	var resp pkgapi.UserResponse
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// GoogleLogin обменивает authorization code провайдера на сессию
func (c *Client) GoogleLogin(ctx context.Context, code string) (*pkgapi.UserResponse, error) {
	req := pkgapi.GoogleLoginRequest{Token: code}

	var resp pkgapi.UserResponse
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth/google", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("google login request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует нового пользователя.
// Токен в ответе отсутствует — аккаунт требует подтверждения по email.
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error) {
	var resp pkgapi.UserResponse
	if _, err := c.doRequest(ctx, http.MethodPost, "/users", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Verify подтверждает аккаунт одноразовым токеном из письма
func (c *Client) Verify(ctx context.Context, token string) error {
	query := url.Values{"token": {token}}
	if _, err := c.doRequest(ctx, http.MethodGet, "/auth/verify", query, nil, nil); err != nil {
		return fmt.Errorf("verify request failed: %w", err)
	}
	return nil
}

// ResendVerification просит сервер повторно отправить письмо с подтверждением.
// Ответ содержит email адресата — так клиент узнает адрес пользователя,
// логинящегося по username.
func (c *Client) ResendVerification(ctx context.Context, identifier string) (*pkgapi.ResendVerificationResponse, error) {
	paramKey := "username"
	if isEmailIdentifier(identifier) {
		paramKey = "email"
	}
	query := url.Values{paramKey: {identifier}}

	var resp pkgapi.ResendVerificationResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/auth/resend-verify", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("resend verification request failed: %w", err)
	}
	return &resp, nil
}

// ForgotPassword запрашивает письмо для восстановления пароля
func (c *Client) ForgotPassword(ctx context.Context, identifier string) (*pkgapi.ForgotPasswordResponse, error) {
	req := pkgapi.ForgotPasswordRequest{Identifier: identifier}

	var resp pkgapi.ForgotPasswordResponse
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth/forgot-password", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("forgot password request failed: %w", err)
	}
	return &resp, nil
}

// ResetPassword устанавливает новый пароль по токену из письма
func (c *Client) ResetPassword(ctx context.Context, req pkgapi.ResetPasswordRequest) (*pkgapi.ResetPasswordResponse, error) {
	var resp pkgapi.ResetPasswordResponse
	if _, err := c.doRequest(ctx, http.MethodPatch, "/auth/reset-password", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("reset password request failed: %w", err)
	}
	return &resp, nil
}

// Logout уведомляет сервер о выходе. Вызывающий код трактует ошибку
// как best effort — локальная сессия удаляется в любом случае.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/users/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// CreateProduct создает товар (сервер требует роль админа)
func (c *Client) CreateProduct(ctx context.Context, req pkgapi.CreateProductRequest) (*pkgapi.ProductResponse, error) {
	var resp pkgapi.ProductResponse
	if _, err := c.doRequest(ctx, http.MethodPost, "/products", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create product request failed: %w", err)
	}
	return &resp, nil
}

// SearchProducts ищет по каталогу; фильтры уходят в query string
func (c *Client) SearchProducts(ctx context.Context, req pkgapi.SearchProductsRequest) ([]pkgapi.ProductResponse, *pkgapi.Paging, error) {
	query := searchQuery(req)

	var products []pkgapi.ProductResponse
	paging, err := c.doRequest(ctx, http.MethodGet, "/products", query, nil, &products)
	if err != nil {
		return nil, nil, fmt.Errorf("search products request failed: %w", err)
	}
	return products, paging, nil
}

// doRequest выполняет HTTP запрос: прикрепляет credential (кроме публичных
// endpoints), разбирает конверт {data, errors, paging} и превращает не-2xx
// ответы в *Error с извлеченным сообщением
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, result any,
) (*pkgapi.Paging, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	c.attachCredential(ctx, req, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// 401 означает что сессия на сервере мертва: чистим локальный credential.
	// Это только побочный эффект — решение о дальнейшей навигации за вызывающим.
	if resp.StatusCode == http.StatusUnauthorized {
		c.dropCredential(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp.StatusCode, respBody),
		}
	}

	if result == nil {
		return nil, nil
	}

	var envelope pkgapi.Envelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return envelope.Paging, nil
}

// attachCredential прикрепляет bearer токен ко всем запросам,
// кроме публичных endpoints
func (c *Client) attachCredential(ctx context.Context, req *http.Request, path string) {
	if c.creds == nil || isPublicPath(path) {
		return
	}

	cred, err := c.creds.GetCredential(ctx)
	if err != nil {
		if err != storage.ErrCredentialNotFound {
			slog.Debug("failed to read credential", "error", err)
		}
		return
	}

	req.Header.Set("Authorization", "Bearer "+cred.Token)
}

// dropCredential удаляет сохраненный credential после 401, если он есть
func (c *Client) dropCredential(ctx context.Context) {
	if c.creds == nil {
		return
	}

	if _, err := c.creds.GetCredential(ctx); err != nil {
		return
	}

	if err := c.creds.DeleteCredential(ctx); err != nil {
		slog.Warn("failed to delete credential after 401", "error", err)
		return
	}
	slog.Debug("credential removed after unauthorized response")
}

// isPublicPath проверяет путь по allow-list публичных endpoints
func isPublicPath(path string) bool {
	if path == "/users" {
		// Регистрация
		return true
	}
	for _, public := range publicPaths {
		if path == public {
			return true
		}
	}
	return false
}

// isEmailIdentifier повторяет серверное правило выбора поля email/username
func isEmailIdentifier(identifier string) bool {
	for _, r := range identifier {
		if r == '@' {
			return true
		}
	}
	return false
}

// searchQuery собирает query string поиска; нулевые значения опускаются
func searchQuery(req pkgapi.SearchProductsRequest) url.Values {
	query := url.Values{}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 {
		size = 10
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	if req.Name != "" {
		query.Set("name", req.Name)
	}
	if req.Brand != "" {
		query.Set("brand", req.Brand)
	}
	if req.Manufacturer != "" {
		query.Set("manufacturer", req.Manufacturer)
	}
	if req.Category != "" {
		query.Set("category", req.Category)
	}
	if req.MinPrice > 0 {
		query.Set("min_price", strconv.FormatFloat(req.MinPrice, 'f', -1, 64))
	}
	if req.MaxPrice > 0 {
		query.Set("max_price", strconv.FormatFloat(req.MaxPrice, 'f', -1, 64))
	}
	if req.InStockOnly {
		query.Set("in_stock_only", "true")
	}
	if req.SortBy != "" {
		query.Set("sort_by", req.SortBy)
	}
	if req.SortOrder != "" {
		query.Set("sort_order", req.SortOrder)
	}

	return query
}
