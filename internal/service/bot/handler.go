package bot

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
)

const component = "bot.handler"

// defaultReactionTimeout 반응으로 미리보기를 닫을 수 있는 시간
const defaultReactionTimeout = 45 * time.Second

// Handler 수신 메시지에서 매물 링크를 찾아 미리보기로 응답합니다.
type Handler struct {
	registry   *provider.Registry
	controller *preview.Controller

	reactionTimeout time.Duration

	// dismissals 진행 중인 반응 대기 고루틴
	dismissals sync.WaitGroup
}

// NewHandler 새로운 Handler를 생성합니다. reactionTimeout이 0 이하이면 45초를 사용합니다.
func NewHandler(registry *provider.Registry, controller *preview.Controller, reactionTimeout time.Duration) *Handler {
	if registry == nil || controller == nil {
		panic("provider.Registry와 preview.Controller는 필수입니다")
	}
	if reactionTimeout <= 0 {
		reactionTimeout = defaultReactionTimeout
	}

	return &Handler{
		registry:        registry,
		controller:      controller,
		reactionTimeout: reactionTimeout,
	}
}

// Wait 진행 중인 반응 대기가 모두 끝날 때까지 기다립니다.
func (h *Handler) Wait() {
	h.dismissals.Wait()
}

// HandleMessage 메시지 하나를 처리합니다.
//
// 처리 순서:
//  1. 봇이 보낸 메시지, 내용이 바뀌지 않은 수정 이벤트는 무시
//  2. 공급자 이름이 없거나 URL이 없으면 무시
//  3. 미리보기 권한이 없으면 안내 문구를 보내고 중단
//  4. 첫 번째 URL의 공급자를 분류하여 매물을 조회하고 미리보기를 전송
//
// 예기치 못한 조회 실패는 오류 미리보기로 응답하며 원본 메시지는 그대로 둡니다.
func (h *Handler) HandleMessage(ctx context.Context, m Messenger, msg Message) error {
	if msg.AuthorIsBot {
		return nil
	}
	if msg.Edited && msg.PreviousContent != nil && *msg.PreviousContent == msg.Content {
		return nil
	}
	if !link.HasKeyword(msg.Content) {
		return nil
	}

	rawURL, ok := link.First(msg.Content)
	if !ok {
		return nil
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"platform":   m.Platform(),
		"channel_id": msg.ChannelID,
		"message_id": msg.ID,
		"author":     msg.AuthorTag,
	})

	perms, err := m.Permissions(ctx, msg.ChannelID)
	if err != nil {
		logger.WithField("error", err).Warn("채널 권한을 조회하지 못했습니다")
		return err
	}
	if !perms.EmbedLinks {
		logger.Info("미리보기 권한이 없어 안내 문구를 전송합니다")
		return m.SendText(ctx, msg.ChannelID, textMissingEmbedPermission)
	}

	p := link.Classify(rawURL)
	if p == link.None || !h.registry.Supports(p) {
		return nil
	}
	canDelete := perms.ManageMessages

	ref, l, err := h.registry.Resolve(ctx, p, rawURL)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) && ref.CanonicalURL != "" {
			return h.replyNotFound(ctx, m, msg, ref, canDelete)
		}

		logger.WithFields(applog.Fields{
			"provider": p.String(),
			"url":      rawURL,
			"error":    err,
		}).Error("매물 조회 중 예기치 못한 오류가 발생했습니다")

		_, sendErr := m.SendPreview(ctx, msg.ChannelID, rawURL, preview.RenderError())
		return sendErr
	}

	logger.WithFields(applog.Fields{
		"provider":      p.String(),
		"canonical_url": ref.CanonicalURL,
	}).Info("링크를 짧은 URL로 변환했습니다")

	return h.sendPreview(ctx, m, msg, ref, l, perms)
}

func (h *Handler) replyNotFound(ctx context.Context, m Messenger, msg Message, ref provider.Ref, canDelete bool) error {
	if !canDelete {
		return m.SendText(ctx, msg.ChannelID, textItemNotFound)
	}

	h.deleteOriginal(ctx, m, msg)

	return m.SendText(ctx, msg.ChannelID, strutil.ReplaceFold(msg.Content, ref.OriginalURL, ref.CanonicalURL+notFoundSuffix))
}

func (h *Handler) sendPreview(ctx context.Context, m Messenger, msg Message, ref provider.Ref, l *listing.Listing, perms Permissions) error {
	canDelete := perms.ManageMessages

	content := ""
	if canDelete {
		content = strutil.ReplaceFold(msg.Content, ref.OriginalURL, ref.CanonicalURL)
		h.deleteOriginal(ctx, m, msg)
	}

	// 버튼은 eBay 미리보기에만 붙이고, 나머지는 반응으로 닫습니다.
	interactive := canDelete && ref.Provider == link.Ebay
	iconURL := m.BotIconURL()

	pv := preview.Render(l, 0, msg.AuthorTag, preview.RenderOptions{
		Interactive: interactive,
		BotIconURL:  iconURL,
	})

	sentID, err := m.SendPreview(ctx, msg.ChannelID, content, pv)
	if err != nil {
		return err
	}

	if interactive {
		h.controller.Sessions().Put(MessageKey(m.Platform(), msg.ChannelID, sentID), preview.Session{
			ItemID:       ref.ID,
			Provider:     ref.Provider,
			RequesterID:  msg.AuthorID,
			RequesterTag: msg.AuthorTag,
			BotIconURL:   iconURL,
		})
		return nil
	}

	if ref.Provider != link.Ebay && perms.ManageMessages && perms.AddReactions {
		if r, ok := m.(Reactor); ok {
			h.startDismissal(ctx, r, m, msg.ChannelID, sentID, msg.AuthorID)
		}
	}

	return nil
}

// deleteOriginal 원본 메시지를 삭제합니다. 실패해도 미리보기 전송은 계속합니다.
func (h *Handler) deleteOriginal(ctx context.Context, m Messenger, msg Message) {
	if err := m.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"channel_id": msg.ChannelID,
			"message_id": msg.ID,
			"error":      err,
		}).Warn("원본 메시지를 삭제하지 못했습니다")
	}
}
