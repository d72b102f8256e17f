package preview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const msgKey = "discord:channel:message"

type recorder struct {
	mu       sync.Mutex
	outcomes []Outcome
	err      error
}

func (r *recorder) apply(_ context.Context, out Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes = append(r.outcomes, out)
	return r.err
}

func (r *recorder) last(t *testing.T) Outcome {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	require.NotEmpty(t, r.outcomes)
	return r.outcomes[len(r.outcomes)-1]
}

func newTestController(t *testing.T, images int, requesterOnly bool) (*Controller, *recorder) {
	t.Helper()

	l := newEbayListing(images)
	c := NewController(newCacheWith(l), NewSessionStore(), requesterOnly)
	c.Sessions().Put(msgKey, Session{
		ItemID:       l.ID,
		Provider:     l.Provider,
		RequesterID:  "u-alice",
		RequesterTag: "alice#0001",
	})

	return c, &recorder{}
}

func request(action Action, actorID, actorTag string) ActionRequest {
	return ActionRequest{
		MessageKey: msgKey,
		Action:     action,
		ActorID:    actorID,
		ActorTag:   actorTag,
		Footer:     "£100.00 BIN - Requested by alice#0001",
	}
}

// =============================================================================
// Navigation
// =============================================================================

func TestController_Navigation(t *testing.T) {
	c, rec := newTestController(t, 3, true)
	ctx := context.Background()
	alice := func(a Action) ActionRequest { return request(a, "u-alice", "alice#0001") }

	require.NoError(t, c.Handle(ctx, alice(ActionPrevious), rec.apply))
	assert.Equal(t, Outcome{Kind: OutcomeDenied, Reply: ReplyFirstImage}, rec.last(t))

	require.NoError(t, c.Handle(ctx, alice(ActionNext), rec.apply))
	out := rec.last(t)
	require.Equal(t, OutcomeUpdated, out.Kind)
	assert.Equal(t, "https://i.ebayimg.com/b.jpg", out.Preview.ImageURL)
	assert.Equal(t, "£100.00 BIN - Requested by alice#0001", out.Preview.Footer)
	prev, _ := out.Preview.Control(ActionPrevious)
	assert.False(t, prev.Disabled, "첫 번째 이미지에서 벗어나면 이전 버튼이 활성화됩니다")

	require.NoError(t, c.Handle(ctx, alice(ActionNext), rec.apply))
	out = rec.last(t)
	next, _ := out.Preview.Control(ActionNext)
	assert.True(t, next.Disabled, "마지막 이미지에서는 다음 버튼이 비활성화됩니다")

	require.NoError(t, c.Handle(ctx, alice(ActionNext), rec.apply))
	assert.Equal(t, Outcome{Kind: OutcomeDenied, Reply: ReplyLastImage}, rec.last(t))

	sess, _ := c.Sessions().Get(msgKey)
	assert.Equal(t, 2, sess.Index, "거부된 요청은 상태를 바꾸지 않습니다")

	require.NoError(t, c.Handle(ctx, alice(ActionPrevious), rec.apply))
	assert.Equal(t, "https://i.ebayimg.com/b.jpg", rec.last(t).Preview.ImageURL)
}

func TestController_NavigationDenied(t *testing.T) {
	ctx := context.Background()

	t.Run("다른 사용자", func(t *testing.T) {
		c, rec := newTestController(t, 3, true)

		require.NoError(t, c.Handle(ctx, request(ActionNext, "u-bob", "bob#0002"), rec.apply))
		assert.Equal(t, Outcome{Kind: OutcomeDenied, Reply: ReplyNotYourPost}, rec.last(t))
	})

	t.Run("요청자 제한 해제", func(t *testing.T) {
		c, rec := newTestController(t, 3, false)

		require.NoError(t, c.Handle(ctx, request(ActionNext, "u-bob", "bob#0002"), rec.apply))
		assert.Equal(t, OutcomeUpdated, rec.last(t).Kind)
	})

	t.Run("캐시가 비워진 경우", func(t *testing.T) {
		c, rec := newTestController(t, 3, true)
		c.cache.Clear()

		require.NoError(t, c.Handle(ctx, request(ActionNext, "u-alice", "alice#0001"), rec.apply))
		assert.Equal(t, Outcome{Kind: OutcomeDenied, Reply: ReplyExpired}, rec.last(t))
	})

	t.Run("상태가 없는 미리보기", func(t *testing.T) {
		c, rec := newTestController(t, 3, true)
		c.Sessions().Clear()

		require.NoError(t, c.Handle(ctx, request(ActionPrevious, "u-alice", "alice#0001"), rec.apply))
		assert.Equal(t, Outcome{Kind: OutcomeDenied, Reply: ReplyExpired}, rec.last(t))
	})

	t.Run("반영 실패 시 위치 유지", func(t *testing.T) {
		c, rec := newTestController(t, 3, true)
		rec.err = errors.New("discord unavailable")

		err := c.Handle(ctx, request(ActionNext, "u-alice", "alice#0001"), rec.apply)
		require.Error(t, err)

		sess, _ := c.Sessions().Get(msgKey)
		assert.Zero(t, sess.Index)
	})
}

// =============================================================================
// Delete
// =============================================================================

func TestController_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("요청자가 아니면 거부", func(t *testing.T) {
		c, rec := newTestController(t, 1, false)

		require.NoError(t, c.Handle(ctx, request(ActionDelete, "u-bob", "alice#0001"), rec.apply))
		assert.Equal(t, Outcome{Kind: OutcomeDenied, Reply: ReplyNotYourPost}, rec.last(t))
		assert.Equal(t, 1, c.Sessions().Len())
	})

	t.Run("요청자는 삭제 가능", func(t *testing.T) {
		c, rec := newTestController(t, 1, true)

		require.NoError(t, c.Handle(ctx, request(ActionDelete, "u-alice", "alice#0001"), rec.apply))
		assert.Equal(t, Outcome{Kind: OutcomeDeleted}, rec.last(t))
		assert.Zero(t, c.Sessions().Len())
	})

	t.Run("상태가 없으면 꼬리말로 확인", func(t *testing.T) {
		c, rec := newTestController(t, 1, true)
		c.Sessions().Clear()

		require.NoError(t, c.Handle(ctx, request(ActionDelete, "u-x", "mallory#6666"), rec.apply))
		assert.Equal(t, OutcomeDenied, rec.last(t).Kind)

		require.NoError(t, c.Handle(ctx, request(ActionDelete, "u-x", "alice#0001"), rec.apply))
		assert.Equal(t, OutcomeDeleted, rec.last(t).Kind)
	})
}

func TestController_IgnoresUnknownAction(t *testing.T) {
	c, rec := newTestController(t, 1, true)

	require.NoError(t, c.Handle(context.Background(), request(Action("share"), "u-alice", "alice#0001"), rec.apply))
	assert.Empty(t, rec.outcomes)
}

func TestController_ConcurrentNext(t *testing.T) {
	c, rec := newTestController(t, 5, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Handle(context.Background(), request(ActionNext, "u-alice", "alice#0001"), rec.apply)
		}()
	}
	wg.Wait()

	sess, _ := c.Sessions().Get(msgKey)
	assert.Equal(t, 4, sess.Index)

	updated := 0
	for _, out := range rec.outcomes {
		if out.Kind == OutcomeUpdated {
			updated++
		}
	}
	assert.Equal(t, 4, updated)
}
