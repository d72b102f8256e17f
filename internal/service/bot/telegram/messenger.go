package telegram

import (
	"context"
	"strconv"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// 채팅 멤버 상태
const (
	statusCreator       = "creator"
	statusAdministrator = "administrator"
	statusMember        = "member"
	statusRestricted    = "restricted"
)

func (s *Service) Platform() string {
	return platform
}

// Permissions 채팅에서 봇의 멤버 정보를 조회하여 권한으로 변환합니다.
// 텔레그램 봇은 메시지에 반응을 달 수 없으므로 AddReactions는 항상 false입니다.
func (s *Service) Permissions(_ context.Context, channelID string) (bot.Permissions, error) {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return bot.Permissions{}, newErrInvalidChatID(channelID, err)
	}

	member, err := s.client.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: s.self.ID,
		},
	})
	if err != nil {
		return bot.Permissions{}, apperrors.Wrapf(err, apperrors.Unavailable, "채팅(%d)에서 봇의 권한을 조회하지 못했습니다", chatID)
	}

	return permissionsOf(member), nil
}

func permissionsOf(m tgbotapi.ChatMember) bot.Permissions {
	switch m.Status {
	case statusCreator:
		return bot.Permissions{EmbedLinks: true, ManageMessages: true}
	case statusAdministrator:
		return bot.Permissions{EmbedLinks: true, ManageMessages: m.CanDeleteMessages}
	case statusMember:
		return bot.Permissions{EmbedLinks: true}
	case statusRestricted:
		return bot.Permissions{EmbedLinks: m.CanSendMediaMessages}
	default:
		return bot.Permissions{}
	}
}

func (s *Service) SendText(ctx context.Context, channelID, text string) error {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return newErrInvalidChatID(channelID, err)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Timeout, "메시지 전송 대기 중 취소되었습니다")
	}

	if _, err := s.client.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "채팅(%d)에 메시지를 전송하지 못했습니다", chatID)
	}
	return nil
}

// SendPreview 이미지가 있으면 사진과 캡션으로, 없으면 HTML 본문으로 미리보기를 보냅니다.
func (s *Service) SendPreview(ctx context.Context, channelID, content string, p *preview.Preview) (string, error) {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return "", newErrInvalidChatID(channelID, err)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", apperrors.Wrap(err, apperrors.Timeout, "미리보기 전송 대기 중 취소되었습니다")
	}

	var c tgbotapi.Chattable
	if p.ImageURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(p.ImageURL))
		photo.Caption = formatPreview(content, p, captionDescriptionLimit)
		photo.ParseMode = tgbotapi.ModeHTML
		if kb := toKeyboard(p); kb != nil {
			photo.ReplyMarkup = kb
		}
		c = photo
	} else {
		msg := tgbotapi.NewMessage(chatID, formatPreview(content, p, textDescriptionLimit))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		if kb := toKeyboard(p); kb != nil {
			msg.ReplyMarkup = kb
		}
		c = msg
	}

	sent, err := s.client.Send(c)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.ExecutionFailed, "채팅(%d)에 미리보기를 전송하지 못했습니다", chatID)
	}

	return strconv.Itoa(sent.MessageID), nil
}

func (s *Service) DeleteMessage(_ context.Context, channelID, messageID string) error {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return newErrInvalidChatID(channelID, err)
	}
	msgID, err := strconv.Atoi(messageID)
	if err != nil {
		return newErrInvalidMessageID(messageID, err)
	}

	if _, err := s.client.Request(tgbotapi.NewDeleteMessage(chatID, msgID)); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "메시지(%d)를 삭제하지 못했습니다", msgID)
	}
	return nil
}

// BotIconURL 텔레그램 미리보기에는 작성자 아이콘이 없습니다.
func (s *Service) BotIconURL() string {
	return ""
}
