package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sinaricell/storefront/internal/client/api"
	"github.com/sinaricell/storefront/internal/client/auth"
	"github.com/sinaricell/storefront/internal/client/storage"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// Phase — фаза верификационного флоу
type Phase int

const (
	// PhaseIdle — форма смонтирована, действий нет
	PhaseIdle Phase = iota
	// PhaseSubmitting — выполняется login/register/verify вызов
	PhaseSubmitting
	// PhaseAwaitingVerification — аккаунт существует, но не подтвержден
	PhaseAwaitingVerification
	// PhaseResending — выполняется повторная отправка письма
	PhaseResending
	// PhaseVerified — терминальная: аккаунт подтвержден, можно логиниться
	PhaseVerified
	// PhaseDailyLimitReached — терминальная: дневной лимит писем исчерпан
	PhaseDailyLimitReached
	// PhaseError — неспецифичная ошибка; следующее действие возвращает в Idle
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAwaitingVerification:
		return "awaiting_verification"
	case PhaseResending:
		return "resending"
	case PhaseVerified:
		return "verified"
	case PhaseDailyLimitReached:
		return "daily_limit_reached"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Ошибки контроллера
var (
	// ErrBusy — предыдущее действие еще не завершилось; действия сериализованы
	ErrBusy = errors.New("another request is in flight")

	// ErrClosed — контроллер закрыт, поздние действия отбрасываются
	ErrClosed = errors.New("controller is closed")

	// ErrCooldownActive — resend запрещен пока идет отсчет
	ErrCooldownActive = errors.New("cooldown is active")

	// ErrDailyLimitReached — resend запрещен до следующего дня
	ErrDailyLimitReached = errors.New("daily resend limit reached")
)

// State — снимок состояния флоу
type State struct {
	Identifier    string
	ResolvedEmail string
	ErrMessage    string
	Phase         Phase
}

// sessionService — срез auth.Service, нужный контроллеру
type sessionService interface {
	Login(ctx context.Context, identifier, password string) (*auth.LoginResult, error)
}

// verifyAPI — срез API клиента для верификационных вызовов
type verifyAPI interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error)
	Verify(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, identifier string) (*pkgapi.ResendVerificationResponse, error)
	ForgotPassword(ctx context.Context, identifier string) (*pkgapi.ForgotPasswordResponse, error)
}

// Controller ведет конечный автомат верификации аккаунта: login/register →
// awaiting verification → resend с cooldown → verified | daily limit | error.
// Один Controller обслуживает одну "форму"; действия сериализованы, ответ,
// пришедший после Close, отбрасывается.
type Controller struct {
	session  sessionService
	api      verifyAPI
	store    CooldownStore
	emails   storage.EmailCacheStorage
	timer    *Timer
	onTick   func(remaining int)
	mu       sync.Mutex
	state    State
	inFlight bool
	closed   bool
}

// NewController создает контроллер для идентификатора.
// Если для идентификатора уже закеширован email, cooldown ведется по нему —
// сервер считает лимиты по адресу, а не по username.
func NewController(
	ctx context.Context,
	session sessionService,
	client verifyAPI,
	store CooldownStore,
	emails storage.EmailCacheStorage,
	identifier string,
	onTick func(remaining int),
) *Controller {
	normalized := storage.NormalizeIdentifier(identifier)

	timerKey := normalized
	resolvedEmail := ""
	if emails != nil {
		if cached, err := emails.GetResolvedEmail(ctx, normalized); err == nil && cached != "" {
			resolvedEmail = cached
			timerKey = storage.NormalizeIdentifier(cached)
		}
	}

	return &Controller{
		session: session,
		api:     client,
		store:   store,
		emails:  emails,
		onTick:  onTick,
		timer:   NewTimer(ctx, store, timerKey, onTick),
		state: State{
			Phase:         PhaseIdle,
			Identifier:    normalized,
			ResolvedEmail: resolvedEmail,
		},
	}
}

// State возвращает снимок текущего состояния
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CooldownRemaining возвращает остаток cooldown в секундах
func (c *Controller) CooldownRemaining() int {
	c.mu.Lock()
	timer := c.timer
	c.mu.Unlock()
	return timer.Remaining()
}

// Close останавливает таймер и помечает контроллер закрытым.
// Ответы на запросы, находившиеся в полете, будут отброшены.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	timer := c.timer
	c.mu.Unlock()

	timer.Stop()
}

// SubmitLogin выполняет вход. Неподтвержденный аккаунт переводит флоу в
// awaiting verification; успех — в verified (сессия сохранена, можно уходить).
func (c *Controller) SubmitLogin(ctx context.Context, password string) (*auth.LoginResult, error) {
	if err := c.begin(PhaseSubmitting); err != nil {
		return nil, err
	}

	result, err := c.session.Login(ctx, c.state.Identifier, password)

	c.finish(func(s *State) {
		switch {
		case err == nil:
			s.Phase = PhaseVerified
		case errors.Is(err, auth.ErrAccountNotVerified):
			s.Phase = PhaseAwaitingVerification
		default:
			s.Phase = PhaseError
			s.ErrMessage = api.Message(err)
		}
	})

	return result, err
}

// SubmitRegister регистрирует аккаунт и переводит флоу в ожидание
// подтверждения с дефолтным cooldown — письмо только что отправлено.
func (c *Controller) SubmitRegister(ctx context.Context, req pkgapi.RegisterRequest) error {
	if err := c.begin(PhaseSubmitting); err != nil {
		return err
	}

	_, err := c.api.Register(ctx, req)

	c.finish(func(s *State) {
		if err != nil {
			s.Phase = PhaseError
			s.ErrMessage = api.Message(err)
			return
		}
		s.Phase = PhaseAwaitingVerification
		c.resolveEmail(ctx, s, req.Email)
		c.timer.Start(ctx, DefaultCooldownSeconds)
	})

	return err
}

// VerifyToken подтверждает аккаунт одноразовым токеном из письма
func (c *Controller) VerifyToken(ctx context.Context, token string) error {
	if err := c.begin(PhaseSubmitting); err != nil {
		return err
	}

	err := c.api.Verify(ctx, token)

	c.finish(func(s *State) {
		if err != nil {
			s.Phase = PhaseError
			s.ErrMessage = api.Message(err)
			return
		}
		s.Phase = PhaseVerified
	})

	return err
}

// Resend просит сервер повторно отправить письмо с подтверждением.
// Запрещен при активном cooldown и после исчерпания дневного лимита.
func (c *Controller) Resend(ctx context.Context) error {
	if err := c.resendAllowed(); err != nil {
		return err
	}

	if err := c.begin(PhaseResending); err != nil {
		return err
	}

	target := c.resendTarget()
	resp, err := c.api.ResendVerification(ctx, target)

	c.finish(func(s *State) {
		if err != nil {
			c.applyResendError(ctx, s, api.Message(err))
			return
		}
		s.Phase = PhaseAwaitingVerification
		c.resolveEmail(ctx, s, resp.Email)
		c.timer.Start(ctx, DefaultCooldownSeconds)
	})

	return err
}

// RequestPasswordReset запрашивает письмо восстановления пароля.
// Использует ту же cooldown-механику, что и resend.
func (c *Controller) RequestPasswordReset(ctx context.Context) error {
	if err := c.resendAllowed(); err != nil {
		return err
	}

	if err := c.begin(PhaseResending); err != nil {
		return err
	}

	resp, err := c.api.ForgotPassword(ctx, c.state.Identifier)

	c.finish(func(s *State) {
		if err != nil {
			c.applyResendError(ctx, s, api.Message(err))
			return
		}
		s.Phase = PhaseAwaitingVerification
		c.resolveEmail(ctx, s, resp.Email)
		c.timer.Start(ctx, DefaultCooldownSeconds)
	})

	return err
}

// resendAllowed проверяет политику доступности resend-действия
func (c *Controller) resendAllowed() error {
	c.mu.Lock()
	phase := c.state.Phase
	timer := c.timer
	c.mu.Unlock()

	if phase == PhaseDailyLimitReached {
		return ErrDailyLimitReached
	}
	if timer.Remaining() > 0 {
		return ErrCooldownActive
	}
	return nil
}

// resendTarget выбирает адресата повторной отправки: закешированный email,
// если он уже известен, иначе исходный идентификатор
func (c *Controller) resendTarget() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.ResolvedEmail != "" {
		return c.state.ResolvedEmail
	}
	return c.state.Identifier
}

// applyResendError применяет классифицированный итог неуспешного resend.
// Вызывается под мьютексом из finish.
func (c *Controller) applyResendError(ctx context.Context, s *State, message string) {
	outcome, seconds := classifyResendError(message)

	switch outcome {
	case outcomeWait:
		// Сервер сам сообщил сколько ждать — отображаем ровно его политику
		s.Phase = PhaseAwaitingVerification
		s.ErrMessage = message
		c.timer.Start(ctx, seconds)
	case outcomeDailyLimit:
		s.Phase = PhaseDailyLimitReached
		s.ErrMessage = message
	case outcomeAlreadyVerified:
		s.Phase = PhaseVerified
		s.ErrMessage = ""
	default:
		s.Phase = PhaseError
		s.ErrMessage = message
	}
}

// resolveEmail запоминает серверный email пользователя и перекладывает
// cooldown на него: дальнейшие лимиты сервер считает по адресу, даже если
// пользователь логинится по username. Вызывается под мьютексом из finish.
func (c *Controller) resolveEmail(ctx context.Context, s *State, email string) {
	if email == "" {
		return
	}

	s.ResolvedEmail = email
	normalized := storage.NormalizeIdentifier(email)

	if c.emails != nil && normalized != s.Identifier {
		if err := c.emails.SaveResolvedEmail(ctx, s.Identifier, email); err != nil {
			slog.Debug("failed to cache resolved email", "error", err)
		}
	}

	if c.timer.Identifier() != normalized {
		c.timer.Stop()
		c.timer = NewTimer(ctx, c.store, normalized, c.onTick)
	}
}

// begin сериализует действия: второе действие не начнется, пока не
// завершилось первое
func (c *Controller) begin(next Phase) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.inFlight {
		return ErrBusy
	}

	c.inFlight = true
	c.state.Phase = next
	c.state.ErrMessage = ""
	return nil
}

// finish применяет результат завершившегося действия.
// Если контроллер уже закрыт, поздний ответ отбрасывается — состояние
// брошенной формы не трогаем.
func (c *Controller) finish(apply func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false
	if c.closed {
		return
	}
	apply(&c.state)
}
