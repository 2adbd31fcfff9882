package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionInfo описывает сохраненную сессию для команды status.
// ExpiresAt заполняется только если токен оказался разбираемым JWT.
type SessionInfo struct {
	ExpiresAt time.Time
	Username  string
	Email     string
	Name      string
	Role      string
	SavedAt   time.Time
	HasExpiry bool
}

// SessionInfo возвращает данные текущей сессии.
// Возвращает storage.ErrCredentialNotFound если сессии нет.
func (s *Service) SessionInfo(ctx context.Context) (*SessionInfo, error) {
	cred, err := s.creds.GetCredential(ctx)
	if err != nil {
		return nil, err
	}

	info := &SessionInfo{
		Username: cred.Username,
		Email:    cred.Email,
		Name:     cred.Name,
		Role:     cred.Role,
		SavedAt:  time.Unix(cred.SavedAt, 0),
	}

	// Токен для клиента непрозрачен, но если это JWT — достаем exp
	// без проверки подписи, чисто для отображения. Неудача не фатальна.
	if expiresAt, ok := tokenExpiry(cred.Token); ok {
		info.ExpiresAt = expiresAt
		info.HasExpiry = true
	}

	return info, nil
}

// tokenExpiry пытается прочитать claim exp из токена как из JWT
// без валидации подписи (секрет знает только сервер)
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}

	return expiry.Time, true
}
