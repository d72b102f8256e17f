// Package bot 채팅 플랫폼과 무관한 메시지 처리 파이프라인입니다.
//
// 각 플랫폼 프런트엔드(Discord, Telegram)는 수신 이벤트를 Message/ActionEvent로 변환하여 Handler에 전달하고,
// Handler는 Messenger 인터페이스를 통해서만 플랫폼에 응답합니다.
package bot

import (
	"context"
	"time"

	"github.com/darkkaiser/listing-bot/internal/service/preview"
)

// Message 수신한 채팅 메시지입니다.
type Message struct {
	ID        string
	ChannelID string

	AuthorID    string
	AuthorTag   string
	AuthorIsBot bool

	Content string

	// Edited 수정 이벤트 여부. PreviousContent는 알 수 있는 경우에만 채워집니다.
	Edited          bool
	PreviousContent *string
}

// Permissions 봇이 채널에서 가진 권한입니다.
type Permissions struct {
	// EmbedLinks 미리보기 전송 권한 (필수)
	EmbedLinks bool

	// ManageMessages 원본 메시지 삭제 권한
	ManageMessages bool

	// AddReactions 반응 추가 권한
	AddReactions bool
}

// Messenger 채팅 플랫폼으로 응답을 보내는 인터페이스입니다.
type Messenger interface {
	// Platform 메시지 키에 사용할 플랫폼 이름 (예: discord)
	Platform() string

	// Permissions 채널에서 봇의 권한을 조회합니다.
	Permissions(ctx context.Context, channelID string) (Permissions, error)

	SendText(ctx context.Context, channelID, text string) error

	// SendPreview 미리보기를 전송하고 전송된 메시지의 ID를 반환합니다.
	SendPreview(ctx context.Context, channelID, content string, p *preview.Preview) (string, error)

	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// BotIconURL 미리보기 작성자 블록에 표시할 봇 아이콘
	BotIconURL() string
}

// Reactor 반응(이모지)으로 미리보기를 닫을 수 있는 플랫폼이 구현합니다.
type Reactor interface {
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	RemoveOwnReaction(ctx context.Context, channelID, messageID, emoji string) error

	// WatchReaction userID의 emoji 반응 감시를 즉시 등록합니다.
	WatchReaction(channelID, messageID, userID, emoji string) ReactionWatch
}

// ReactionWatch 등록된 반응 감시입니다.
type ReactionWatch interface {
	// Wait 반응이 오면 true, timeout이 지나거나 ctx가 취소되면 false를 반환하고 감시를 끝냅니다.
	Wait(ctx context.Context, timeout time.Duration) bool

	// Stop Wait 없이 감시를 끝냅니다. 여러 번 호출해도 됩니다.
	Stop()
}

// ActionEvent 미리보기 버튼을 누른 이벤트입니다.
type ActionEvent struct {
	ChannelID string
	MessageID string
	CustomID  string

	ActorID  string
	ActorTag string

	// Footer 버튼이 눌린 미리보기의 현재 꼬리말
	Footer string
}

// ActionResponder 버튼 이벤트 하나에 응답하는 인터페이스입니다.
type ActionResponder interface {
	// Update 미리보기를 새 내용으로 수정합니다.
	Update(ctx context.Context, p *preview.Preview) error

	// Delete 미리보기를 삭제합니다.
	Delete(ctx context.Context) error

	// ReplyPrivately 버튼을 누른 사용자에게만 보이는 응답을 보냅니다.
	ReplyPrivately(ctx context.Context, text string) error
}

// MessageKey 플랫폼, 채널, 메시지 ID로 미리보기 상태의 키를 만듭니다.
func MessageKey(platform, channelID, messageID string) string {
	return platform + ":" + channelID + ":" + messageID
}
