package scheduler

import (
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
)

// NewErrInvalidFlushSpec Cron 표현식이 올바르지 않아 캐시 비우기 작업을 등록하지 못했을 때 반환하는 에러를 생성합니다.
func NewErrInvalidFlushSpec(spec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (FlushSpec='%s')", spec)
}
