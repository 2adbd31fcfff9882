package auth

import (
	"context"
	"log/slog"
)

// GuardDecision — решение маршрутного guard'а
type GuardDecision int

const (
	// DecisionRender разрешает выполнение команды
	DecisionRender GuardDecision = iota
	// DecisionRedirectHome — сессия уже есть, guest-only команда недоступна
	DecisionRedirectHome
	// DecisionRedirectLogin — сессии нет, member-only команда недоступна
	DecisionRedirectLogin
)

// CredentialReader — доступ guard'а к наличию credential
type CredentialReader interface {
	HasCredential(ctx context.Context) (bool, error)
}

// Guard решает, доступна ли команда, глядя только на наличие локального
// credential. Никаких сетевых вызовов: валидность токена на сервере
// выяснится лениво при первом аутентифицированном запросе (и 401-очистке).
type Guard struct {
	creds CredentialReader
}

// NewGuard создает новый guard поверх хранилища credential
func NewGuard(creds CredentialReader) *Guard {
	return &Guard{creds: creds}
}

// GuestOnly разрешает команду только без сессии (login, register,
// forgot-password, verify, reset-password)
func (g *Guard) GuestOnly(ctx context.Context) GuardDecision {
	if g.hasCredential(ctx) {
		return DecisionRedirectHome
	}
	return DecisionRender
}

// MemberOnly разрешает команду только при наличии сессии
func (g *Guard) MemberOnly(ctx context.Context) GuardDecision {
	if !g.hasCredential(ctx) {
		return DecisionRedirectLogin
	}
	return DecisionRender
}

// hasCredential трактует ошибку чтения хранилища как отсутствие сессии
func (g *Guard) hasCredential(ctx context.Context) bool {
	has, err := g.creds.HasCredential(ctx)
	if err != nil {
		slog.Debug("guard failed to read credential", "error", err)
		return false
	}
	return has
}
