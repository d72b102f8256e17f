package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

// newGuildWindow 참여 시각이 이 시간 이내인 서버만 새로 초대된 것으로 봅니다.
// Ready와 GuildCreate 핸들러는 서로 다른 고루틴에서 실행되므로 knownGuilds만으로는 재접속 시 중복 환영을 막을 수 없습니다.
const newGuildWindow = 2 * time.Minute

func (s *Service) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if r.User != nil {
		s.botUserID = r.User.ID
		s.iconURL = r.User.AvatarURL("")
	}
	for _, g := range r.Guilds {
		s.knownGuilds[g.ID] = struct{}{}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_user_id": s.botUserID,
		"guilds":      len(r.Guilds),
	}).Info("디스코드 연결 준비 완료")
}

// handleGuildCreate 새로 초대된 서버의 소유자에게 환영 메시지를 보냅니다.
func (s *Service) handleGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}

	s.stateMu.Lock()
	_, known := s.knownGuilds[g.ID]
	s.knownGuilds[g.ID] = struct{}{}
	s.stateMu.Unlock()

	if known || g.OwnerID == "" || time.Since(g.JoinedAt) > newGuildWindow {
		return
	}
	if !s.beginEvent() {
		return
	}
	defer s.endEvent()

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"guild_id": g.ID,
		"owner_id": g.OwnerID,
	})
	logger.Info("새 서버에 초대되었습니다")

	ctx := s.serviceStopCtx

	dm, err := s.session.UserChannelCreate(g.OwnerID, discordgo.WithContext(ctx))
	if err != nil {
		logger.WithField("error", err).Warn("서버 소유자와의 DM 채널을 열지 못했습니다")
		return
	}

	if _, err := s.SendPreview(ctx, dm.ID, "", bot.Welcome()); err != nil {
		logger.WithField("error", err).Warn("환영 메시지를 전송하지 못했습니다")
	}
}

func (s *Service) handleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil || m.GuildID == "" {
		return
	}

	s.dispatchMessage(toMessage(m.Message, false, nil))
}

func (s *Service) handleMessageUpdate(_ *discordgo.Session, m *discordgo.MessageUpdate) {
	// 임베드만 갱신된 수정 이벤트에는 작성자가 없습니다.
	if m.Message == nil || m.Author == nil || m.GuildID == "" {
		return
	}

	var previous *string
	if m.BeforeUpdate != nil {
		content := m.BeforeUpdate.Content
		previous = &content
	}

	s.dispatchMessage(toMessage(m.Message, true, previous))
}

func (s *Service) dispatchMessage(msg bot.Message) {
	if !s.beginEvent() {
		return
	}
	defer s.endEvent()

	if err := s.handler.HandleMessage(s.serviceStopCtx, s, msg); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"channel_id": msg.ChannelID,
			"message_id": msg.ID,
			"error":      err,
		}).Warn("메시지 처리에 실패했습니다")
	}
}

func (s *Service) handleMessageReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.MessageReaction == nil {
		return
	}
	s.reactions.notify(r.ChannelID, r.MessageID, r.UserID, r.Emoji.Name)
}

func (s *Service) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Interaction == nil || i.Type != discordgo.InteractionMessageComponent || i.Message == nil {
		return
	}

	actor := i.User
	if i.Member != nil && i.Member.User != nil {
		actor = i.Member.User
	}
	if actor == nil {
		return
	}

	if !s.beginEvent() {
		return
	}
	defer s.endEvent()

	ev := bot.ActionEvent{
		ChannelID: i.ChannelID,
		MessageID: i.Message.ID,
		CustomID:  i.MessageComponentData().CustomID,
		ActorID:   actor.ID,
		ActorTag:  actor.String(),
		Footer:    footerText(i.Message),
	}

	ctx := s.serviceStopCtx
	resp := &interactionResponder{service: s, interaction: i.Interaction}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"channel_id": ev.ChannelID,
		"message_id": ev.MessageID,
		"custom_id":  ev.CustomID,
		"actor":      ev.ActorTag,
	})

	if err := s.handler.HandleAction(ctx, platform, ev, resp); err != nil {
		logger.WithField("error", err).Warn("버튼 이벤트 처리에 실패했습니다")
	}

	// 응답하지 않은 상호작용은 클라이언트에 실패로 표시되므로 조용히 확인만 합니다.
	if !resp.responded {
		if err := resp.acknowledge(ctx); err != nil {
			logger.WithField("error", err).Debug("상호작용 확인 응답에 실패했습니다")
		}
	}
}

// toMessage 디스코드 메시지를 플랫폼 독립 메시지로 변환합니다.
func toMessage(m *discordgo.Message, edited bool, previous *string) bot.Message {
	return bot.Message{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		AuthorID:        m.Author.ID,
		AuthorTag:       m.Author.String(),
		AuthorIsBot:     m.Author.Bot,
		Content:         m.Content,
		Edited:          edited,
		PreviousContent: previous,
	}
}

// interactionResponder 버튼 상호작용 하나에 대한 응답을 보냅니다.
type interactionResponder struct {
	service     *Service
	interaction *discordgo.Interaction

	responded bool
}

var _ bot.ActionResponder = (*interactionResponder)(nil)

func (r *interactionResponder) Update(ctx context.Context, p *preview.Preview) error {
	r.responded = true
	return r.service.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{toEmbed(p)},
			Components: toComponents(p),
		},
	}, discordgo.WithContext(ctx))
}

func (r *interactionResponder) Delete(ctx context.Context) error {
	if err := r.acknowledge(ctx); err != nil {
		return err
	}
	return r.service.DeleteMessage(ctx, r.interaction.ChannelID, r.interaction.Message.ID)
}

func (r *interactionResponder) ReplyPrivately(ctx context.Context, text string) error {
	r.responded = true
	return r.service.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (r *interactionResponder) acknowledge(ctx context.Context) error {
	r.responded = true
	return r.service.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}
