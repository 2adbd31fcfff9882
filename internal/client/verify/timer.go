package verify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CooldownStore — срез хранилища cooldown-записей, нужный таймеру
type CooldownStore interface {
	SetCooldown(ctx context.Context, identifier string, seconds int) error
	RemainingSeconds(ctx context.Context, identifier string) (int, error)
	ClearCooldown(ctx context.Context, identifier string) error
}

// Timer ведет обратный отсчет до разрешения повторной отправки письма.
// Каждую секунду остаток пересчитывается из хранилища, а не локальным
// декрементом — так несколько работающих процессов сходятся к одному
// персистентному моменту истечения. На нуле запись удаляется и тик
// останавливается.
type Timer struct {
	store      CooldownStore
	onTick     func(remaining int)
	cancel     context.CancelFunc
	identifier string
	mu         sync.Mutex
	wg         sync.WaitGroup
	remaining  int
	running    bool
}

// NewTimer создает таймер для идентификатора и сразу инициализирует остаток
// из хранилища: перезапуск клиента посреди cooldown продолжает отсчет,
// а не сбрасывает его.
func NewTimer(ctx context.Context, store CooldownStore, identifier string, onTick func(int)) *Timer {
	t := &Timer{
		store:      store,
		identifier: identifier,
		onTick:     onTick,
	}

	remaining, err := store.RemainingSeconds(ctx, identifier)
	if err != nil {
		slog.Debug("failed to read cooldown on init", "identifier", identifier, "error", err)
		remaining = 0
	}

	if remaining > 0 {
		t.remaining = remaining
		t.startLoop()
	}

	return t
}

// Start записывает cooldown в хранилище и запускает отсчет.
// Ошибка записи — fail-open: cooldown это вежливость UX, а не контроль
// безопасности, без записи отсчет просто не переживет перезапуск.
func (t *Timer) Start(ctx context.Context, seconds int) {
	if seconds <= 0 {
		return
	}

	if err := t.store.SetCooldown(ctx, t.identifier, seconds); err != nil {
		slog.Debug("failed to persist cooldown", "identifier", t.identifier, "error", err)
	}

	t.mu.Lock()
	t.remaining = seconds
	alreadyRunning := t.running
	t.mu.Unlock()

	if !alreadyRunning {
		t.startLoop()
	}
}

// Remaining возвращает текущий остаток в секундах, никогда не отрицательный
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Identifier возвращает ключ, под которым таймер ведет отсчет
func (t *Timer) Identifier() string {
	return t.identifier
}

// Stop останавливает цикл тиков. Обязателен при выбрасывании таймера,
// иначе goroutine продолжит тикать по брошенному состоянию.
func (t *Timer) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.running = false
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}

// startLoop запускает цикл тиков; повторный запуск при работающем цикле
// исключается флагом running
func (t *Timer) startLoop() {
	loopCtx, cancel := context.WithCancel(context.Background())

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		cancel()
		return
	}
	t.running = true
	t.cancel = cancel
	t.mu.Unlock()

	t.wg.Add(1)
	go t.loop(loopCtx)
}

func (t *Timer) loop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Пересчитываем из хранилища, не декрементом
			remaining, err := t.store.RemainingSeconds(ctx, t.identifier)
			if err != nil {
				slog.Debug("failed to read cooldown on tick", "error", err)
				remaining = 0
			}

			t.mu.Lock()
			t.remaining = remaining
			onTick := t.onTick
			if remaining <= 0 {
				t.running = false
				t.cancel = nil
			}
			t.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}

			if remaining <= 0 {
				if err := t.store.ClearCooldown(ctx, t.identifier); err != nil {
					slog.Debug("failed to clear expired cooldown", "error", err)
				}
				return
			}
		}
	}
}
