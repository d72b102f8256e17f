package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 하나의 로그 이벤트를 여러 Writer로 분배합니다.
//
// 라우팅 정책:
//   - console: 모든 레벨
//   - critical: ERROR 이상
//   - verbose: DEBUG 이하 (main 으로는 전달하지 않음)
//   - main: INFO 이상
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu sync.RWMutex // 로그 기록(Read Lock)과 종료 처리(Write Lock) 간의 동시성 제어

	closed bool
}

// Levels 이 Hook이 수신할 로그 레벨의 집합을 반환합니다.
func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 로그 이벤트를 포맷팅한 뒤 라우팅 정책에 따라 기록합니다.
// 한 채널의 쓰기 실패가 다른 채널의 기록을 막지 않도록 첫 번째 에러만 보관했다가 반환합니다.
func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	if h.consoleWriter != nil {
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 표준 출력(Console) 쓰기 실패: %v\n", err)
		}
	}

	var firstErr error
	keep := func(err error, tag, what string) {
		if err == nil {
			return
		}
		if firstErr == nil {
			firstErr = err
		}
		fmt.Fprintf(os.Stderr, "[%s] %s 로그 파일 쓰기 실패: %v\n", tag, what, err)
	}

	if entry.Level <= ErrorLevel && h.criticalWriter != nil {
		_, err := h.criticalWriter.Write(msg)
		keep(err, "LOG-SYSTEM-FAILURE", "Critical")
	}

	if entry.Level >= DebugLevel {
		if h.verboseWriter != nil {
			_, err := h.verboseWriter.Write(msg)
			keep(err, "LOG-SYSTEM-WARN", "Verbose")
		}

		// 상세 로그는 메인 로그에 남기지 않는다.
		return firstErr
	}

	if h.mainWriter != nil {
		_, err := h.mainWriter.Write(msg)
		keep(err, "LOG-SYSTEM-FAILURE", "Main")
	}

	return firstErr
}

// Close 이후의 모든 로그 기록 요청을 거부합니다.
// 진행 중인 Fire 호출이 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
