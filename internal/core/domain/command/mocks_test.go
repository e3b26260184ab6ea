package command

import (
	"context"
	"slices"
	"time"

	"voltraggio/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
	actions []domain.Action
}

func (m *MockSender) SendChatAction(_ context.Context, _ int64, action domain.Action) {
	m.actions = append(m.actions, action)
}

func (m *MockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *MockSender) SendPlainMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

type MockMediaSender struct {
	chatID  int64
	caption string
	asset   domain.Asset
	called  bool
	err     error
}

func (m *MockMediaSender) SendAnimationReply(_ context.Context, message *domain.Message,
	asset domain.Asset, caption string) error {
	m.chatID = message.ChatID
	m.asset = asset
	m.caption = caption
	m.called = true
	return m.err
}

func (m *MockMediaSender) SendPhoto(_ context.Context, chatID int64, asset domain.Asset, caption string) error {
	m.chatID = chatID
	m.asset = asset
	m.caption = caption
	m.called = true
	return m.err
}

type MockStore struct {
	admins    []int64
	sent      int64
	startDate time.Time
	startErr  error
	imagePath string
	saveErr   error
	saves     int
}

func (m *MockStore) SendCount() int64 { return m.sent }

func (m *MockStore) IncrementSendCount() (int64, error) {
	m.sent++
	return m.sent, nil
}

func (m *MockStore) Admins() []int64 { return m.admins }

func (m *MockStore) IsAdmin(chatID int64) bool { return slices.Contains(m.admins, chatID) }

func (m *MockStore) StartDate() (time.Time, error) { return m.startDate, m.startErr }

func (m *MockStore) AnimationPath() string { return "" }

func (m *MockStore) ImagePath() string { return m.imagePath }

func (m *MockStore) Save() error {
	m.saves++
	return m.saveErr
}

// MockAuth mirrors the admin authorizer without sending anything.
type MockAuth struct {
	admins  []int64
	denials []int64
}

func (m *MockAuth) IsAdmin(chatID int64) bool {
	return slices.Contains(m.admins, chatID)
}

func (m *MockAuth) Authorize(_ context.Context, chatID int64) bool {
	if m.IsAdmin(chatID) {
		return true
	}
	m.denials = append(m.denials, chatID)
	return false
}

type MockLifecycle struct {
	restarts int
	stops    int
}

func (m *MockLifecycle) Restart() { m.restarts++ }

func (m *MockLifecycle) Stop() { m.stops++ }
