package fetcher

import (
	"math/rand/v2"
	"net/http"
)

// defaultUserAgents User-Agent가 지정되지 않았을 때 무작위로 선택하는 브라우저 목록입니다.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// UserAgentFetcher 요청에 User-Agent가 없으면 목록에서 하나를 골라 주입합니다.
// 요청에 이미 User-Agent가 있으면 그대로 전달합니다. (Amazon 어댑터는 고정값을 직접 지정합니다)
type UserAgentFetcher struct {
	delegate   Fetcher
	userAgents []string
}

var _ Fetcher = (*UserAgentFetcher)(nil)

// NewUserAgentFetcher userAgents가 비어 있으면 기본 목록을 사용합니다.
func NewUserAgentFetcher(delegate Fetcher, userAgents ...string) *UserAgentFetcher {
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}

	return &UserAgentFetcher{
		delegate:   delegate,
		userAgents: userAgents,
	}
}

// Do 원본 요청은 수정하지 않고 복제본에 헤더를 설정합니다.
func (f *UserAgentFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return f.delegate.Do(req)
	}

	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", f.userAgents[rand.IntN(len(f.userAgents))])

	return f.delegate.Do(cloned)
}
