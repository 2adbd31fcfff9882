package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sinaricell/storefront/internal/client/api"
	"github.com/sinaricell/storefront/internal/client/storage"
	"github.com/sinaricell/storefront/internal/validation"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// ErrAccountNotVerified сигнализирует, что логин отклонен из-за
// неподтвержденного email — вызывающий код уходит в verification flow
var ErrAccountNotVerified = errors.New("account is not verified")

// apiClient — срез API клиента, нужный сервису сессии
type apiClient interface {
	Login(ctx context.Context, identifier, password string) (*pkgapi.UserResponse, error)
	GoogleLogin(ctx context.Context, code string) (*pkgapi.UserResponse, error)
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error)
	Logout(ctx context.Context) error
}

// Service предоставляет функции сессии: вход, регистрация, выход.
// Успешный вход сохраняет credential в хранилище (последняя запись побеждает);
// выход всегда удаляет локальный credential, даже если сервер недоступен.
type Service struct {
	apiClient apiClient
	creds     storage.CredentialStorage
}

// NewService создает новый сервис сессии
func NewService(client apiClient, creds storage.CredentialStorage) *Service {
	return &Service{
		apiClient: client,
		creds:     creds,
	}
}

// LoginResult содержит результат успешного входа
type LoginResult struct {
	Username string
	Email    string
	Name     string
	Role     string
}

// Login выполняет вход по идентификатору (email или username) и паролю.
// При успехе сохраняет credential. Если аккаунт не подтвержден, возвращает
// ошибку, оборачивающую ErrAccountNotVerified.
func (s *Service) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	// Валидация входных данных
	if err := validation.ValidateIdentifier(identifier); err != nil {
		return nil, fmt.Errorf("invalid identifier: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, identifier, password)
	if err != nil {
		if message := api.Message(err); isNotVerifiedMessage(message) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotVerified, message)
		}
		return nil, err
	}

	if err := s.saveSession(ctx, resp); err != nil {
		return nil, err
	}

	return &LoginResult{
		Username: resp.Username,
		Email:    resp.Email,
		Name:     resp.Name,
		Role:     resp.Role,
	}, nil
}

// GoogleLogin обменивает authorization code на сессию и сохраняет credential
func (s *Service) GoogleLogin(ctx context.Context, code string) (*LoginResult, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code cannot be empty")
	}

	resp, err := s.apiClient.GoogleLogin(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, resp); err != nil {
		return nil, err
	}

	return &LoginResult{
		Username: resp.Username,
		Email:    resp.Email,
		Name:     resp.Name,
		Role:     resp.Role,
	}, nil
}

// RegisterResult содержит результат регистрации.
// Токена здесь нет: аккаунт сначала должен подтвердить email.
type RegisterResult struct {
	Username string
	Email    string
	Name     string
}

// Register регистрирует нового пользователя
func (s *Service) Register(ctx context.Context, req pkgapi.RegisterRequest) (*RegisterResult, error) {
	// Валидация входных данных
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return &RegisterResult{
		Username: resp.Username,
		Email:    resp.Email,
		Name:     resp.Name,
	}, nil
}

// Logout выполняет выход из системы.
// Сервер уведомляется best effort; локальный credential удаляется всегда.
func (s *Service) Logout(ctx context.Context) error {
	has, err := s.creds.HasCredential(ctx)
	if err != nil {
		slog.Debug("failed to check credential during logout", "error", err)
	}

	if has {
		if logoutErr := s.apiClient.Logout(ctx); logoutErr != nil {
			// Не прерываем процесс, если сервер недоступен
			slog.Warn("failed to logout on server", "error", logoutErr)
		}
	}

	if err := s.creds.DeleteCredential(ctx); err != nil {
		return fmt.Errorf("failed to delete local credential: %w", err)
	}

	return nil
}

// saveSession сохраняет credential из ответа login/google
func (s *Service) saveSession(ctx context.Context, resp *pkgapi.UserResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("server response contains no token")
	}

	cred := &storage.Credential{
		Token:    resp.Token,
		Username: resp.Username,
		Email:    resp.Email,
		Name:     resp.Name,
		Role:     resp.Role,
		SavedAt:  time.Now().Unix(),
	}

	if err := s.creds.SaveCredential(ctx, cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// isNotVerifiedMessage распознает отказ сервера по неподтвержденному аккаунту.
// Сопоставление по подстроке — совместимость со свободным текстом сервера.
func isNotVerifiedMessage(message string) bool {
	return strings.Contains(strings.ToLower(message), "not verified")
}
