package fetcher

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitFetcher 외부 사이트로 나가는 요청의 속도를 제한합니다.
// 토큰을 얻을 때까지 대기하며, 대기 중 요청 Context가 취소되면 즉시 반환합니다.
type RateLimitFetcher struct {
	delegate Fetcher
	limiter  *rate.Limiter
}

var _ Fetcher = (*RateLimitFetcher)(nil)

// NewRateLimitFetcher requestsPerSecond가 0 이하이면 제한 없이 delegate를 그대로 반환합니다.
func NewRateLimitFetcher(delegate Fetcher, requestsPerSecond float64, burst int) Fetcher {
	if requestsPerSecond <= 0 {
		return delegate
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimitFetcher{
		delegate: delegate,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (f *RateLimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		return nil, NewErrRateLimitWait(err)
	}
	return f.delegate.Do(req)
}
