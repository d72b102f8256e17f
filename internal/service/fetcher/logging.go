package fetcher

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

// sensitiveQueryKeys 로그에 값을 남기지 않을 쿼리 파라미터 (소문자 비교)
var sensitiveQueryKeys = []string{"token", "access_token", "key", "api_key", "client_secret", "secret", "signature"}

// LoggingFetcher 요청 메서드, URL, 상태 코드, 소요 시간을 기록합니다.
// 성공은 Debug, 실패는 Warn 레벨로 남깁니다. (매물 없음 등 정상적인 실패도 흔하므로 Error로 올리지 않는다)
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status"] = resp.Status
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()
		if code := StatusCode(err); code != 0 {
			fields["status_code"] = code
		}

		applog.WithComponentAndFields(component, fields).Warn("HTTP 요청 실패")

		return resp, err
	}

	applog.WithComponentAndFields(component, fields).Debug("HTTP 요청 완료")

	return resp, nil
}

// redactURL 로그와 에러 메시지에 남길 URL에서 사용자 정보와 민감한 쿼리 값을 가립니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	c := *u
	if c.User != nil {
		c.User = url.User("***")
	}

	if c.RawQuery != "" {
		q := c.Query()
		for key := range q {
			lower := strings.ToLower(key)
			for _, s := range sensitiveQueryKeys {
				if lower == s {
					q.Set(key, "***")
					break
				}
			}
		}
		c.RawQuery = q.Encode()
	}

	return c.String()
}
