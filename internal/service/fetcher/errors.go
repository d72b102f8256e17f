package fetcher

import (
	"fmt"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
)

// NewErrResponseBodyTooLarge 응답 본문이 허용 크기를 넘었을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("응답 본문의 크기가 제한(%d 바이트)을 초과했습니다", limit))
}

// NewErrRateLimitWait 속도 제한 대기 중 요청이 취소되었을 때의 에러를 생성합니다.
func NewErrRateLimitWait(err error) error {
	return apperrors.Wrap(err, apperrors.Timeout, "요청 속도 제한 대기 중 요청이 취소되었습니다")
}
