//go:build !integration

package usecase_test

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/model"
	"telegram-registration-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memRegistrantRepo is a small in-memory implementation used by unit tests.
type memRegistrantRepo struct {
	mu    sync.RWMutex
	store map[int64]*model.Registrant
	order []int64

	insertCalls int
	listCalls   int

	existsErr error
	insertErr error
	countErr  error
	listErr   error
}

func newMemRegistrantRepo() *memRegistrantRepo {
	return &memRegistrantRepo{store: make(map[int64]*model.Registrant)}
}

func (m *memRegistrantRepo) seed(r *model.Registrant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.TelegramID] = &cp
	m.order = append(m.order, r.TelegramID)
}

func (m *memRegistrantRepo) Exists(ctx context.Context, telegramID int64) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[telegramID]
	return ok, nil
}

func (m *memRegistrantRepo) Insert(ctx context.Context, r *model.Registrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, ok := m.store[r.TelegramID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *r
	m.store[r.TelegramID] = &cp
	m.order = append(m.order, r.TelegramID)
	return nil
}

func (m *memRegistrantRepo) Count(ctx context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *memRegistrantRepo) List(ctx context.Context) ([]model.RegistrantRef, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.RegistrantRef, 0, len(m.order))
	for _, id := range m.order {
		r := m.store[id]
		out = append(out, model.RegistrantRef{TelegramID: r.TelegramID, Username: r.Username})
	}
	return out, nil
}

// memAdminLogRepo records appended audit entries in memory.
type memAdminLogRepo struct {
	mu        sync.Mutex
	entries   []model.AdminLogEntry
	appendErr error
}

func newMemAdminLogRepo() *memAdminLogRepo { return &memAdminLogRepo{} }

func (m *memAdminLogRepo) Append(ctx context.Context, e *model.AdminLogEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

// fakeBot records outbound sends and can fail selectively per recipient.
type fakeBot struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error
}

type sentMessage struct {
	TelegramID int64
	Text       string
}

var _ adapter.BotAdapter = (*fakeBot)(nil)

func newFakeBot() *fakeBot {
	return &fakeBot{failFor: make(map[int64]error)}
}

func (f *fakeBot) SendMessage(ctx context.Context, telegramID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[telegramID]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{TelegramID: telegramID, Text: text})
	return nil
}

func (f *fakeBot) SendButtons(ctx context.Context, telegramID int64, text string, rows [][]adapter.InlineButton) error {
	return f.SendMessage(ctx, telegramID, text)
}
