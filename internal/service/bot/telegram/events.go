package telegram

import (
	"context"
	"strconv"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (s *Service) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		s.handleMessage(ctx, update.Message, false)
	case update.EditedMessage != nil:
		s.handleMessage(ctx, update.EditedMessage, true)
	case update.CallbackQuery != nil:
		s.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.MyChatMember != nil:
		s.handleMyChatMember(ctx, update.MyChatMember)
	}
}

// handleMessage 그룹 채팅의 메시지만 처리합니다.
// 텔레그램은 수정 전 본문을 알려주지 않으므로 마지막으로 받은 본문을 기억해 두고 수정 이벤트와 비교합니다.
func (s *Service) handleMessage(ctx context.Context, m *tgbotapi.Message, edited bool) {
	if m.From == nil || m.Chat == nil || !(m.Chat.IsGroup() || m.Chat.IsSuperGroup()) {
		return
	}

	content := m.Text
	if content == "" {
		content = m.Caption
	}

	msg := bot.Message{
		ID:          strconv.Itoa(m.MessageID),
		ChannelID:   strconv.FormatInt(m.Chat.ID, 10),
		AuthorID:    strconv.FormatInt(m.From.ID, 10),
		AuthorTag:   m.From.String(),
		AuthorIsBot: m.From.IsBot,
		Content:     content,
		Edited:      edited,
	}

	key := msg.ChannelID + ":" + msg.ID
	if prev, ok := s.contents.swap(key, content); ok && edited {
		msg.PreviousContent = &prev
	}

	if err := s.handler.HandleMessage(ctx, s, msg); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id":    m.Chat.ID,
			"message_id": m.MessageID,
			"error":      err,
		}).Warn("메시지 처리에 실패했습니다")
	}
}

func (s *Service) handleCallbackQuery(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.Message == nil || q.Message.Chat == nil || q.From == nil {
		return
	}

	text := q.Message.Caption
	if text == "" {
		text = q.Message.Text
	}

	ev := bot.ActionEvent{
		ChannelID: strconv.FormatInt(q.Message.Chat.ID, 10),
		MessageID: strconv.Itoa(q.Message.MessageID),
		CustomID:  q.Data,
		ActorID:   strconv.FormatInt(q.From.ID, 10),
		ActorTag:  q.From.String(),
		Footer:    footerFromText(text),
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"chat_id":    ev.ChannelID,
		"message_id": ev.MessageID,
		"data":       ev.CustomID,
		"actor":      ev.ActorTag,
	})

	resp := &callbackResponder{service: s, query: q}
	if err := s.handler.HandleAction(ctx, platform, ev, resp); err != nil {
		logger.WithField("error", err).Warn("버튼 이벤트 처리에 실패했습니다")
	}

	// 응답하지 않은 콜백은 클라이언트에 로딩 표시가 남습니다.
	if !resp.answered {
		if err := resp.answer(""); err != nil {
			logger.WithField("error", err).Debug("콜백 응답에 실패했습니다")
		}
	}
}

// handleMyChatMember 봇이 그룹에 새로 추가되면 환영 메시지를 보냅니다.
func (s *Service) handleMyChatMember(ctx context.Context, u *tgbotapi.ChatMemberUpdated) {
	if !(u.Chat.IsGroup() || u.Chat.IsSuperGroup()) {
		return
	}

	old, cur := u.OldChatMember, u.NewChatMember
	joined := (old.HasLeft() || old.WasKicked()) && (cur.Status == statusMember || cur.IsAdministrator())
	if !joined {
		return
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"chat_id":  u.Chat.ID,
		"added_by": u.From.String(),
	})
	logger.Info("새 그룹에 초대되었습니다")

	if _, err := s.SendPreview(ctx, strconv.FormatInt(u.Chat.ID, 10), "", bot.Welcome()); err != nil {
		logger.WithField("error", err).Warn("환영 메시지를 전송하지 못했습니다")
	}
}

// callbackResponder 인라인 키보드 콜백 하나에 대한 응답을 보냅니다.
type callbackResponder struct {
	service *Service
	query   *tgbotapi.CallbackQuery

	answered bool
}

var _ bot.ActionResponder = (*callbackResponder)(nil)

// Update 메시지의 사진, 캡션, 키보드를 새 미리보기로 교체합니다.
func (r *callbackResponder) Update(_ context.Context, p *preview.Preview) error {
	m := r.query.Message
	edit := tgbotapi.BaseEdit{
		ChatID:      m.Chat.ID,
		MessageID:   m.MessageID,
		ReplyMarkup: toKeyboard(p),
	}

	var c tgbotapi.Chattable
	if p.ImageURL != "" {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(p.ImageURL))
		photo.Caption = formatPreview("", p, captionDescriptionLimit)
		photo.ParseMode = tgbotapi.ModeHTML
		c = tgbotapi.EditMessageMediaConfig{BaseEdit: edit, Media: photo}
	} else {
		c = tgbotapi.EditMessageTextConfig{
			BaseEdit:              edit,
			Text:                  formatPreview("", p, textDescriptionLimit),
			ParseMode:             tgbotapi.ModeHTML,
			DisableWebPagePreview: true,
		}
	}

	if _, err := r.service.client.Request(c); err != nil {
		return apperrors.Wrapf(err, apperrors.ExecutionFailed, "미리보기(%d)를 수정하지 못했습니다", m.MessageID)
	}
	return r.answer("")
}

func (r *callbackResponder) Delete(ctx context.Context) error {
	m := r.query.Message
	if err := r.service.DeleteMessage(ctx, strconv.FormatInt(m.Chat.ID, 10), strconv.Itoa(m.MessageID)); err != nil {
		return err
	}
	return r.answer("")
}

// ReplyPrivately 콜백 알림 창은 버튼을 누른 사용자에게만 보입니다.
func (r *callbackResponder) ReplyPrivately(_ context.Context, text string) error {
	return r.answer(text)
}

func (r *callbackResponder) answer(text string) error {
	r.answered = true

	cb := tgbotapi.NewCallback(r.query.ID, text)
	if text != "" {
		cb = tgbotapi.NewCallbackWithAlert(r.query.ID, text)
	}

	if _, err := r.service.client.Request(cb); err != nil {
		return apperrors.Wrap(err, apperrors.ExecutionFailed, "콜백에 응답하지 못했습니다")
	}
	return nil
}
