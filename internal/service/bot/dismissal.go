package bot

import (
	"context"

	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

// startDismissal 미리보기에 ❌ 반응을 달고, 요청자가 제한 시간 안에 같은 반응을 누르면 미리보기를 삭제합니다.
// 시간이 지나면 봇의 반응만 제거하며, 제거 실패는 무시합니다.
func (h *Handler) startDismissal(ctx context.Context, r Reactor, m Messenger, channelID, messageID, requesterID string) {
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"channel_id": channelID,
		"message_id": messageID,
	})

	// 반응 추가 직후에 눌린 반응도 받을 수 있도록 감시를 먼저 등록합니다.
	watch := r.WatchReaction(channelID, messageID, requesterID, dismissEmoji)

	if err := r.AddReaction(ctx, channelID, messageID, dismissEmoji); err != nil {
		watch.Stop()
		logger.WithField("error", err).Warn("닫기 반응을 추가하지 못했습니다")
		return
	}

	h.dismissals.Add(1)
	go func() {
		defer h.dismissals.Done()

		if watch.Wait(ctx, h.reactionTimeout) {
			if err := m.DeleteMessage(ctx, channelID, messageID); err != nil {
				logger.WithField("error", err).Warn("반응으로 요청된 미리보기 삭제에 실패했습니다")
				return
			}
			logger.Debug("요청자의 반응으로 미리보기를 삭제했습니다")
			return
		}

		// 종료 중에도 반응은 정리합니다.
		_ = r.RemoveOwnReaction(context.WithoutCancel(ctx), channelID, messageID, dismissEmoji)
	}()
}
