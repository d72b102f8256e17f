package fetcher

import (
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// HTTPFetcher http.Client를 감싸는 체인의 가장 안쪽 Fetcher입니다.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 지정한 타임아웃의 HTTPFetcher를 생성합니다. 0 이하이면 기본값(15초)을 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewHTTPFetcherWithClient 이미 구성된 http.Client를 사용합니다. (OAuth2 클라이언트, 테스트 서버 클라이언트 등)
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}
