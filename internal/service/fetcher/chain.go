package fetcher

import (
	"net/http"
	"time"
)

// Options New로 조립할 Fetcher 체인의 설정입니다.
type Options struct {
	// Timeout 요청 하나의 전체 타임아웃 (0이면 15초)
	Timeout time.Duration

	// RequestsPerSecond 초당 요청 수 제한 (0이면 제한 없음)
	RequestsPerSecond float64
	Burst             int

	// MaxBodyBytes 응답 본문 최대 크기 (0이면 제한 없음)
	MaxBodyBytes int64

	// UserAgents 요청에 User-Agent가 없을 때 고를 목록 (비어 있으면 기본 목록)
	UserAgents []string

	// Client 지정하면 Timeout 대신 이 클라이언트를 사용합니다.
	Client *http.Client
}

// New 매물 수집에 사용하는 표준 Fetcher 체인을 생성합니다.
func New(opts Options) Fetcher {
	var f Fetcher
	if opts.Client != nil {
		f = NewHTTPFetcherWithClient(opts.Client)
	} else {
		f = NewHTTPFetcher(opts.Timeout)
	}

	f = NewUserAgentFetcher(f, opts.UserAgents...)
	f = NewMaxBytesFetcher(f, opts.MaxBodyBytes)
	f = NewStatusCodeFetcher(f)
	f = NewRateLimitFetcher(f, opts.RequestsPerSecond, opts.Burst)
	f = NewLoggingFetcher(f)

	return f
}
