package preview

import (
	"context"

	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/pkg/concurrency"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

const component = "preview"

// ActionRequest 미리보기 버튼을 누른 이벤트입니다.
type ActionRequest struct {
	// MessageKey 미리보기 메시지의 플랫폼 고유 키
	MessageKey string

	Action Action

	ActorID  string
	ActorTag string

	// Footer 현재 표시 중인 꼬리말. 상태가 사라진 미리보기의 삭제 권한 확인에 사용합니다.
	Footer string
}

// OutcomeKind 버튼 처리 결과의 종류입니다.
type OutcomeKind int

const (
	// OutcomeIgnored 처리 대상이 아닌 요청
	OutcomeIgnored OutcomeKind = iota

	// OutcomeDenied 요청자에게만 보이는 응답을 보내고 메시지는 그대로 둡니다.
	OutcomeDenied

	// OutcomeUpdated 미리보기를 새 내용으로 수정합니다.
	OutcomeUpdated

	// OutcomeDeleted 미리보기를 삭제합니다.
	OutcomeDeleted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDenied:
		return "denied"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "ignored"
	}
}

// Outcome 버튼 처리 결과입니다.
type Outcome struct {
	Kind OutcomeKind

	// Reply OutcomeDenied일 때 요청자에게만 보낼 응답
	Reply string

	// Preview OutcomeUpdated일 때 새로 그린 미리보기
	Preview *Preview
}

// ApplyFunc 처리 결과를 플랫폼에 반영합니다. 에러를 반환하면 상태를 변경하지 않습니다.
type ApplyFunc func(ctx context.Context, out Outcome) error

// Controller 미리보기 버튼의 상태 전이를 처리합니다.
//
// 같은 미리보기에 대한 요청은 순서대로 처리되며, 거부된 요청은 상태를 바꾸지 않습니다.
type Controller struct {
	cache    *listing.Cache
	sessions *SessionStore

	// requesterOnly 다음/이전 버튼도 요청자만 누를 수 있는지 여부 (삭제는 항상 요청자만 가능)
	requesterOnly bool

	locks *concurrency.KeyedMutex[string]
}

// NewController 새로운 Controller를 생성합니다.
func NewController(cache *listing.Cache, sessions *SessionStore, requesterOnly bool) *Controller {
	if cache == nil || sessions == nil {
		panic("listing.Cache와 SessionStore는 필수입니다")
	}

	return &Controller{
		cache:         cache,
		sessions:      sessions,
		requesterOnly: requesterOnly,
		locks:         concurrency.NewKeyedMutex[string](),
	}
}

// Sessions 미리보기 상태 저장소를 반환합니다.
func (c *Controller) Sessions() *SessionStore {
	return c.sessions
}

// Handle 요청을 처리하고 그 결과를 apply로 반영합니다.
// apply가 성공한 경우에만 페이지 위치를 저장하거나 상태를 삭제합니다.
func (c *Controller) Handle(ctx context.Context, req ActionRequest, apply ApplyFunc) error {
	unlock := c.locks.Lock(req.MessageKey)
	defer unlock()

	out, commit := c.decide(req)

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"message_key": req.MessageKey,
		"action":      string(req.Action),
		"actor_id":    req.ActorID,
		"outcome":     out.Kind.String(),
	})
	if out.Kind == OutcomeIgnored {
		logger.Debug("처리 대상이 아닌 버튼 요청입니다")
		return nil
	}

	if err := apply(ctx, out); err != nil {
		logger.WithField("error", err).Warn("버튼 처리 결과를 반영하지 못했습니다")
		return err
	}

	if commit != nil {
		commit()
	}
	logger.Debug("버튼 요청 처리 완료")

	return nil
}

// decide 요청의 결과와, 반영에 성공했을 때 실행할 상태 변경을 결정합니다.
func (c *Controller) decide(req ActionRequest) (Outcome, func()) {
	sess, ok := c.sessions.Get(req.MessageKey)

	switch req.Action {
	case ActionDelete:
		requester := sess.RequesterTag
		if !ok {
			requester = RequesterFromFooter(req.Footer)
		}
		if !c.isRequester(sess, ok, requester, req) {
			return denied(ReplyNotYourPost), nil
		}
		return Outcome{Kind: OutcomeDeleted}, func() { c.sessions.Delete(req.MessageKey) }

	case ActionNext, ActionPrevious:
		if !ok {
			return denied(ReplyExpired), nil
		}
		if c.requesterOnly && !c.isRequester(sess, true, sess.RequesterTag, req) {
			return denied(ReplyNotYourPost), nil
		}

		l, found := c.cache.Get(sess.ItemID)
		if !found {
			return denied(ReplyExpired), nil
		}

		next := sess.Index + 1
		if req.Action == ActionPrevious {
			if sess.Index <= 0 {
				return denied(ReplyFirstImage), nil
			}
			next = sess.Index - 1
		} else if next >= l.ImageCount() {
			return denied(ReplyLastImage), nil
		}

		p := Render(l, next, sess.RequesterTag, RenderOptions{Interactive: true, BotIconURL: sess.BotIconURL})
		updated := sess
		updated.Index = next

		return Outcome{Kind: OutcomeUpdated, Preview: p}, func() { c.sessions.Put(req.MessageKey, updated) }

	default:
		return Outcome{Kind: OutcomeIgnored}, nil
	}
}

// isRequester 상태에 요청자 ID가 있으면 ID로, 없으면 태그로 비교합니다.
func (c *Controller) isRequester(sess Session, hasSession bool, requesterTag string, req ActionRequest) bool {
	if hasSession && sess.RequesterID != "" {
		return sess.RequesterID == req.ActorID
	}
	return requesterTag != "" && requesterTag == req.ActorTag
}

func denied(reply string) Outcome {
	return Outcome{Kind: OutcomeDenied, Reply: reply}
}
