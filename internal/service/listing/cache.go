package listing

import (
	"sync"
)

// Cache 매물 ID를 키로 정규화된 매물을 보관하는 메모리 캐시입니다.
//
// 용량 제한이나 항목별 만료가 없으며, 외부 스케줄러가 주기적으로 Clear를 호출하여 전체를 비웁니다.
// 같은 ID에 대한 동시 Set은 마지막 값이 남습니다.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Listing
}

// NewCache 빈 캐시를 생성합니다.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*Listing),
	}
}

// Get id에 해당하는 매물의 복사본을 반환합니다.
func (c *Cache) Get(id string) (*Listing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// Set id로 매물을 저장합니다. 저장되는 값은 복사본입니다.
func (c *Cache) Set(id string, l *Listing) {
	if l == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = l.Clone()
}

// Clear 캐시를 모두 비우고 비운 항목 수를 반환합니다.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*Listing)

	return n
}

// Len 저장된 항목 수를 반환합니다.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
