package provider

import (
	"fmt"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/link"
)

var (
	// ErrAdapterNil 등록하려는 어댑터가 nil인 경우
	ErrAdapterNil = apperrors.New(apperrors.Internal, "어댑터는 nil일 수 없습니다")
)

func newErrUnsupportedProvider(p link.Provider) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 공급자입니다 (provider=%s)", p))
}

func newErrDuplicateAdapter(p link.Provider) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("이미 등록된 공급자입니다 (provider=%s)", p))
}

// NewErrInvalidURL URL에서 매물 식별자를 추출하지 못한 경우
func NewErrInvalidURL(p link.Provider, rawURL string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 매물 URL 형식이 아닙니다 (URL: %s)", p, rawURL))
}

// NewErrItemNotFound 매물이 없거나 조회할 수 없는 경우
func NewErrItemNotFound(ref Ref, cause error) error {
	msg := fmt.Sprintf("매물을 찾을 수 없습니다 (provider=%s, id=%s)", ref.Provider, ref.ID)
	if cause == nil {
		return apperrors.New(apperrors.NotFound, msg)
	}
	return apperrors.Wrap(cause, apperrors.NotFound, msg)
}
