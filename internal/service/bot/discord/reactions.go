package discord

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/listing-bot/internal/service/bot"
)

type reactionKey struct {
	channelID string
	messageID string
}

type reactionWaiter struct {
	userID string
	emoji  string

	matched chan struct{}
}

// reactionWaiters 메시지별로 특정 사용자의 반응을 기다리는 대기자 목록입니다.
type reactionWaiters struct {
	mu      sync.Mutex
	waiters map[reactionKey][]*reactionWaiter
}

func newReactionWaiters() *reactionWaiters {
	return &reactionWaiters{
		waiters: make(map[reactionKey][]*reactionWaiter),
	}
}

// watch 대기자를 즉시 등록합니다. 등록 이후 도착한 반응은 Wait 호출 전이라도 놓치지 않습니다.
func (w *reactionWaiters) watch(channelID, messageID, userID, emoji string) *reactionWatch {
	key := reactionKey{channelID: channelID, messageID: messageID}
	waiter := &reactionWaiter{
		userID:  userID,
		emoji:   emoji,
		matched: make(chan struct{}, 1),
	}

	w.mu.Lock()
	w.waiters[key] = append(w.waiters[key], waiter)
	w.mu.Unlock()

	return &reactionWatch{owner: w, key: key, waiter: waiter}
}

// notify 수신한 반응과 일치하는 대기자를 깨웁니다.
func (w *reactionWaiters) notify(channelID, messageID, userID, emoji string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, waiter := range w.waiters[reactionKey{channelID: channelID, messageID: messageID}] {
		if waiter.userID != userID || waiter.emoji != emoji {
			continue
		}
		select {
		case waiter.matched <- struct{}{}:
		default:
		}
	}
}

func (w *reactionWaiters) remove(key reactionKey, target *reactionWaiter) {
	w.mu.Lock()
	defer w.mu.Unlock()

	list := w.waiters[key]
	for i, waiter := range list {
		if waiter == target {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}

	if len(list) == 0 {
		delete(w.waiters, key)
		return
	}
	w.waiters[key] = list
}

func (w *reactionWaiters) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.waiters)
}

// reactionWatch 등록된 대기자 하나입니다.
type reactionWatch struct {
	owner  *reactionWaiters
	key    reactionKey
	waiter *reactionWaiter

	once sync.Once
}

var _ bot.ReactionWatch = (*reactionWatch)(nil)

// Wait 반응이 오면 true, timeout이 지나거나 ctx가 취소되면 false를 반환합니다. 반환 후 대기자는 제거됩니다.
func (rw *reactionWatch) Wait(ctx context.Context, timeout time.Duration) bool {
	defer rw.Stop()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-rw.waiter.matched:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func (rw *reactionWatch) Stop() {
	rw.once.Do(func() { rw.owner.remove(rw.key, rw.waiter) })
}
