package fetcher

import (
	"errors"
	"fmt"
)

// HTTPStatusError 허용되지 않은 HTTP 상태 코드의 응답을 표현합니다.
//
// Cause에는 상태 코드에 따라 분류된 AppError가 들어 있어, apperrors.Is(err, apperrors.NotFound)로
// "매물 없음"을 판별할 수 있습니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	BodySnippet string
	Cause       error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// IsStatus err 체인에 지정한 상태 코드의 HTTPStatusError가 있는지 확인합니다.
func IsStatus(err error, statusCode int) bool {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == statusCode
}

// StatusCode err 체인에 있는 HTTPStatusError의 상태 코드를 반환합니다. 없으면 0을 반환합니다.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		return 0
	}
	return statusErr.StatusCode
}
