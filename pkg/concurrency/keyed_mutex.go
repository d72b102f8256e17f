// Package concurrency 동시성 제어를 위한 보조 도구를 제공합니다.
package concurrency

import (
	"sync"
)

// KeyedMutex 키별로 독립적인 Mutex를 제공합니다.
// 서로 다른 키에 대한 작업은 병렬로 처리되며, 더 이상 참조되지 않는 키의 Mutex는 즉시 정리됩니다.
//
// 미리보기 메시지 ID를 키로 사용하여 같은 메시지에 대한 버튼 입력을 직렬화합니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	mu       sync.Mutex
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{
		locks: make(map[K]*entry),
	}
}

// Len 현재 잠겨 있거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}

// Lock 키에 대한 락을 획득하고, 락을 해제하는 함수를 반환합니다.
//
//	unlock := km.Lock(messageID)
//	defer unlock()
func (km *KeyedMutex[K]) Lock(key K) (unlock func()) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &entry{}
		km.locks[key] = e
	}
	e.refCount++
	km.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() { km.unlock(key, e) })
	}
}

func (km *KeyedMutex[K]) unlock(key K, e *entry) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e.mu.Unlock()

	e.refCount--
	if e.refCount <= 0 {
		delete(km.locks, key)
	}
}
