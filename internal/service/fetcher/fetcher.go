// Package fetcher 매물 페이지와 외부 API 요청에 사용하는 HTTP 클라이언트 체인을 제공합니다.
//
// 각 기능은 Fetcher를 감싸는 데코레이터로 구현되며 New에서 다음 순서로 조립됩니다.
//
//	Logging → RateLimit → StatusCode → MaxBytes → UserAgent → HTTP
package fetcher

import (
	"context"
	"net/http"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get GET 요청을 전송합니다. 요청에 실패하면 응답 Body는 이미 정리된 상태입니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}
