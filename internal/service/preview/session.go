package preview

import (
	"sync"
	"time"

	"github.com/darkkaiser/listing-bot/internal/service/link"
)

// Session 전송된 미리보기 하나의 페이지 상태입니다. 미리보기 메시지 ID를 키로 보관합니다.
type Session struct {
	ItemID   string
	Provider link.Provider

	// Index 현재 표시 중인 이미지 위치
	Index int

	RequesterID  string
	RequesterTag string

	BotIconURL string
	CreatedAt  time.Time
}

// SessionStore 미리보기 상태를 보관하는 메모리 저장소입니다. 매물 캐시와 함께 비워집니다.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore 빈 저장소를 생성합니다.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

func (s *SessionStore) Get(messageKey string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[messageKey]
	return sess, ok
}

func (s *SessionStore) Put(messageKey string, sess Session) {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[messageKey] = sess
}

func (s *SessionStore) Delete(messageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, messageKey)
}

// Clear 모든 상태를 비우고 비운 개수를 반환합니다.
func (s *SessionStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.sessions)
	s.sessions = make(map[string]Session)

	return n
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
