// Package provider 공급자별 어댑터를 하나의 디스패치 테이블로 묶고 캐시를 거쳐 매물을 조회합니다.
package provider

import (
	"context"

	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
)

const component = "provider"

// Ref 어댑터가 URL에서 추출한 매물 참조입니다.
type Ref struct {
	Provider link.Provider

	// ID 공급자 내 매물 식별자 (캐시 키)
	ID string

	// CanonicalURL 메시지에 표시할 짧은 URL
	CanonicalURL string

	// OriginalURL 메시지에 있던 원래 URL
	OriginalURL string
}

// Adapter 한 공급자의 URL 해석과 매물 조회를 담당합니다.
//
// Fetch는 매물이 없으면 apperrors.NotFound 타입의 에러를, 그 밖의 실패는 다른 타입의 에러를 반환합니다.
type Adapter interface {
	Provider() link.Provider
	Parse(rawURL string) (Ref, error)
	Fetch(ctx context.Context, ref Ref) (*listing.Listing, error)
}
