package telegram

import (
	"sync"
)

// maxRememberedContents 본문을 기억하는 최대 메시지 수
const maxRememberedContents = 4096

// contentMemory 메시지별로 마지막으로 처리한 본문을 기억합니다.
// 가득 차면 가장 먼저 기억한 메시지부터 잊습니다.
type contentMemory struct {
	mu    sync.Mutex
	limit int

	contents map[string]string
	order    []string
}

func newContentMemory(limit int) *contentMemory {
	return &contentMemory{
		limit:    limit,
		contents: make(map[string]string),
	}
}

// swap key의 본문을 content로 바꾸고 이전 본문을 반환합니다.
func (c *contentMemory) swap(key, content string) (prev string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok = c.contents[key]
	if !ok {
		if len(c.order) >= c.limit {
			delete(c.contents, c.order[0])
			c.order = c.order[1:]
		}
		c.order = append(c.order, key)
	}
	c.contents[key] = content

	return prev, ok
}

func (c *contentMemory) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.contents)
}
