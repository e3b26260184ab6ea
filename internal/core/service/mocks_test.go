package service

import (
	"context"
	"slices"
	"time"

	"voltraggio/internal/core/domain"
)

type mockStore struct {
	admins        []int64
	count         int64
	animationPath string
	incrementErr  error
	incCalls      int
}

func (m *mockStore) SendCount() int64 { return m.count }

func (m *mockStore) IncrementSendCount() (int64, error) {
	m.incCalls++
	m.count++
	return m.count, m.incrementErr
}

func (m *mockStore) Admins() []int64 { return m.admins }

func (m *mockStore) IsAdmin(chatID int64) bool { return slices.Contains(m.admins, chatID) }

func (m *mockStore) StartDate() (time.Time, error) { return time.Time{}, nil }

func (m *mockStore) AnimationPath() string { return m.animationPath }

func (m *mockStore) ImagePath() string { return "" }

func (m *mockStore) Save() error { return nil }

type sentText struct {
	chatID int64
	text   string
	plain  bool
}

type mockTextSender struct {
	sent    []sentText
	actions []domain.Action
	failFor map[int64]error
}

func (m *mockTextSender) SendMessage(_ context.Context, chatID int64, text string) error {
	m.sent = append(m.sent, sentText{chatID: chatID, text: text})
	return m.failFor[chatID]
}

func (m *mockTextSender) SendPlainMessage(_ context.Context, chatID int64, text string) error {
	m.sent = append(m.sent, sentText{chatID: chatID, text: text, plain: true})
	return m.failFor[chatID]
}

func (m *mockTextSender) SendChatAction(_ context.Context, _ int64, action domain.Action) {
	m.actions = append(m.actions, action)
}

type mockMediaSender struct {
	caption string
	asset   domain.Asset
	replyTo int
	err     error
	calls   int
}

func (m *mockMediaSender) SendAnimationReply(_ context.Context, message *domain.Message,
	asset domain.Asset, caption string) error {
	m.calls++
	m.caption = caption
	m.asset = asset
	m.replyTo = message.ID
	return m.err
}

func (m *mockMediaSender) SendPhoto(_ context.Context, _ int64, asset domain.Asset, caption string) error {
	m.calls++
	m.caption = caption
	m.asset = asset
	return m.err
}
