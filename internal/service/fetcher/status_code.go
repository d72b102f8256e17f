package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
)

// maxBodySnippetBytes 에러 메시지에 포함할 응답 본문의 최대 크기
const maxBodySnippetBytes = 1024

// StatusCodeFetcher 허용되지 않은 상태 코드의 응답을 HTTPStatusError로 바꾸는 미들웨어입니다.
// 에러를 반환할 때는 응답 본문을 정리하고 nil 응답을 반환합니다.
type StatusCodeFetcher struct {
	delegate        Fetcher
	allowedStatuses []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher allowedStatuses가 비어 있으면 2xx 전체를 허용합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatuses ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:        delegate,
		allowedStatuses: allowedStatuses,
	}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if statusErr := CheckResponseStatus(resp, f.allowedStatuses...); statusErr != nil {
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}

// CheckResponseStatus 응답 상태 코드가 허용 목록(비어 있으면 2xx)에 없으면 HTTPStatusError를 반환합니다.
// 에러의 Cause는 상태 코드에 따라 분류됩니다.
//   - 404, 410: NotFound
//   - 400: InvalidInput
//   - 401, 403: Forbidden
//   - 429, 5xx: Unavailable
//   - 그 외: ExecutionFailed
//
// 본문의 앞부분을 읽어 에러에 포함하므로, 에러가 반환되면 본문은 더 이상 온전하지 않습니다.
func CheckResponseStatus(resp *http.Response, allowedStatuses ...int) error {
	if isAllowedStatus(resp.StatusCode, allowedStatuses) {
		return nil
	}

	var snippet string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		snippet = strings.TrimSpace(string(b))
	}

	var url string
	if resp.Request != nil && resp.Request.URL != nil {
		url = redactURL(resp.Request.URL)
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         url,
		BodySnippet: snippet,
		Cause:       apperrors.New(classifyStatus(resp.StatusCode), fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %d", resp.StatusCode)),
	}
}

func isAllowedStatus(code int, allowed []int) bool {
	if len(allowed) == 0 {
		return code >= 200 && code < 300
	}
	return slices.Contains(allowed, code)
}

func classifyStatus(code int) apperrors.ErrorType {
	switch {
	case code == http.StatusNotFound || code == http.StatusGone:
		return apperrors.NotFound
	case code == http.StatusBadRequest:
		return apperrors.InvalidInput
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperrors.Forbidden
	case code == http.StatusTooManyRequests || code >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}
