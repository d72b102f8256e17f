package fetcher

import (
	"io"
)

// maxDrainBytes 커넥션 재사용을 위해 버릴 응답 본문의 최대 크기입니다.
// 이보다 큰 본문을 가진 커넥션은 재사용되지 않고 닫힙니다.
const maxDrainBytes = 64 * 1024

// drainAndCloseBody Keep-Alive 커넥션이 풀로 반환될 수 있도록 본문을 비우고 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
}
