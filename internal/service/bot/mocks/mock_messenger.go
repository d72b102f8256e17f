// Package mocks bot 패키지의 테스트용 Mock 구현체를 제공합니다.
package mocks

import (
	"context"
	"time"

	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/stretchr/testify/mock"
)

var (
	_ bot.Messenger       = (*MockMessenger)(nil)
	_ bot.Reactor         = (*MockReactiveMessenger)(nil)
	_ bot.ReactionWatch   = (*MockReactionWatch)(nil)
	_ bot.ActionResponder = (*MockResponder)(nil)
)

// MockMessenger 반응을 지원하지 않는 플랫폼의 Messenger입니다.
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Platform() string {
	return "mock"
}

func (m *MockMessenger) Permissions(ctx context.Context, channelID string) (bot.Permissions, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(bot.Permissions), args.Error(1)
}

func (m *MockMessenger) SendText(ctx context.Context, channelID, text string) error {
	return m.Called(ctx, channelID, text).Error(0)
}

func (m *MockMessenger) SendPreview(ctx context.Context, channelID, content string, p *preview.Preview) (string, error) {
	args := m.Called(ctx, channelID, content, p)
	return args.String(0), args.Error(1)
}

func (m *MockMessenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return m.Called(ctx, channelID, messageID).Error(0)
}

func (m *MockMessenger) BotIconURL() string {
	return "https://cdn.example.com/bot.png"
}

// MockReactiveMessenger 반응을 지원하는 플랫폼의 Messenger입니다.
type MockReactiveMessenger struct {
	MockMessenger
}

func (m *MockReactiveMessenger) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return m.Called(ctx, channelID, messageID, emoji).Error(0)
}

func (m *MockReactiveMessenger) RemoveOwnReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return m.Called(ctx, channelID, messageID, emoji).Error(0)
}

func (m *MockReactiveMessenger) WatchReaction(channelID, messageID, userID, emoji string) bot.ReactionWatch {
	return m.Called(channelID, messageID, userID, emoji).Get(0).(bot.ReactionWatch)
}

// MockReactionWatch 반응 감시 Mock입니다.
type MockReactionWatch struct {
	mock.Mock
}

func (m *MockReactionWatch) Wait(ctx context.Context, timeout time.Duration) bool {
	return m.Called(ctx, timeout).Bool(0)
}

func (m *MockReactionWatch) Stop() {
	m.Called()
}

// MockResponder 버튼 이벤트 응답 Mock입니다.
type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Update(ctx context.Context, p *preview.Preview) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockResponder) Delete(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockResponder) ReplyPrivately(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}
