package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
)

// ownReaction 봇 자신의 반응을 가리키는 사용자 ID
const ownReaction = "@me"

func (s *Service) Platform() string {
	return platform
}

// Permissions 채널에서 봇의 권한을 계산합니다. 관리자 권한은 모든 권한을 포함합니다.
func (s *Service) Permissions(ctx context.Context, channelID string) (bot.Permissions, error) {
	botUserID, _ := s.botUser()

	perms, err := s.session.UserChannelPermissions(botUserID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return bot.Permissions{}, apperrors.Wrapf(err, apperrors.Unavailable, "채널(%s) 권한 조회에 실패했습니다", channelID)
	}

	return bot.Permissions{
		EmbedLinks:     perms&discordgo.PermissionEmbedLinks != 0,
		ManageMessages: perms&discordgo.PermissionManageMessages != 0,
		AddReactions:   perms&discordgo.PermissionAddReactions != 0,
	}, nil
}

func (s *Service) SendText(ctx context.Context, channelID, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Timeout, "메시지 전송 대기 중 취소되었습니다")
	}

	if _, err := s.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "채널(%s)에 메시지를 전송하지 못했습니다", channelID)
	}
	return nil
}

func (s *Service) SendPreview(ctx context.Context, channelID, content string, p *preview.Preview) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", apperrors.Wrap(err, apperrors.Timeout, "미리보기 전송 대기 중 취소되었습니다")
	}

	sent, err := s.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{toEmbed(p)},
		Components: toComponents(p),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.ExecutionFailed, "채널(%s)에 미리보기를 전송하지 못했습니다", channelID)
	}

	return sent.ID, nil
}

func (s *Service) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := s.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "메시지(%s)를 삭제하지 못했습니다", messageID)
	}
	return nil
}

func (s *Service) BotIconURL() string {
	_, iconURL := s.botUser()
	return iconURL
}

func (s *Service) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := s.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "메시지(%s)에 반응을 추가하지 못했습니다", messageID)
	}
	return nil
}

func (s *Service) RemoveOwnReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := s.session.MessageReactionRemove(channelID, messageID, emoji, ownReaction, discordgo.WithContext(ctx)); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "메시지(%s)의 반응을 제거하지 못했습니다", messageID)
	}
	return nil
}

func (s *Service) WatchReaction(channelID, messageID, userID, emoji string) bot.ReactionWatch {
	return s.reactions.watch(channelID, messageID, userID, emoji)
}
