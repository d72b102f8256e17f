package bot

import (
	"context"

	"github.com/darkkaiser/listing-bot/internal/service/preview"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

// HandleAction 미리보기 버튼 이벤트를 처리합니다.
func (h *Handler) HandleAction(ctx context.Context, platform string, ev ActionEvent, resp ActionResponder) error {
	action, ok := preview.ParseAction(ev.CustomID)
	if !ok {
		applog.WithComponentAndFields(component, applog.Fields{
			"platform":  platform,
			"custom_id": ev.CustomID,
		}).Debug("알 수 없는 버튼 식별자입니다")
		return nil
	}

	req := preview.ActionRequest{
		MessageKey: MessageKey(platform, ev.ChannelID, ev.MessageID),
		Action:     action,
		ActorID:    ev.ActorID,
		ActorTag:   ev.ActorTag,
		Footer:     ev.Footer,
	}

	return h.controller.Handle(ctx, req, func(ctx context.Context, out preview.Outcome) error {
		switch out.Kind {
		case preview.OutcomeDenied:
			return resp.ReplyPrivately(ctx, out.Reply)
		case preview.OutcomeUpdated:
			return resp.Update(ctx, out.Preview)
		case preview.OutcomeDeleted:
			return resp.Delete(ctx)
		default:
			return nil
		}
	})
}
