// Package listing 공급자와 무관하게 정규화된 매물 정보와 그 캐시를 정의합니다.
package listing

import (
	"time"

	"github.com/darkkaiser/listing-bot/internal/service/link"
)

// Listing 미리보기 한 건을 그리는 데 필요한 정규화된 매물 정보입니다.
//
// 공급자별 응답 형태는 어댑터 안에서만 다루며, 이후의 렌더링과 페이지 이동은 이 타입만 사용합니다.
// 생성 이후에는 수정하지 않습니다.
type Listing struct {
	// ID 공급자 내에서 고유한 매물 식별자 (캐시 키)
	ID       string
	Provider link.Provider

	Title string

	// CanonicalURL 쿼리 스트링 등을 제거한 짧은 URL
	CanonicalURL string

	PrimaryImage     string
	AdditionalImages []string

	// Description 공급자별 규칙으로 조합된 본문
	Description string

	// Price 통화 기호가 붙은 가격 (없으면 빈 문자열)
	Price string

	// AuctionType 즉시 구매(BIN)/경매 구분 (개념이 없는 공급자는 빈 문자열)
	AuctionType string

	ItemLocation string
	Condition    string

	FetchedAt time.Time

	images []string
}

// Images 대표 이미지를 맨 앞에 둔 전체 이미지 목록을 반환합니다.
// 목록은 Seal 시점에 고정되며 빈 URL은 제외됩니다.
func (l *Listing) Images() []string {
	if l.images == nil {
		return buildImages(l.PrimaryImage, l.AdditionalImages)
	}
	return l.images
}

// ImageCount 전체 이미지 개수입니다.
func (l *Listing) ImageCount() int {
	return len(l.Images())
}

// ImageAt index 위치의 이미지 URL을 반환합니다. 범위를 벗어나면 빈 문자열입니다.
func (l *Listing) ImageAt(index int) string {
	images := l.Images()
	if index < 0 || index >= len(images) {
		return ""
	}
	return images[index]
}

// Seal 이미지 목록을 고정합니다. 어댑터가 매물을 반환하기 직전에 호출합니다.
func (l *Listing) Seal() *Listing {
	l.images = buildImages(l.PrimaryImage, l.AdditionalImages)
	if l.FetchedAt.IsZero() {
		l.FetchedAt = time.Now()
	}
	return l
}

// Clone 매물을 복제합니다. 슬라이스도 새로 할당됩니다.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}

	c := *l
	if l.AdditionalImages != nil {
		c.AdditionalImages = append([]string(nil), l.AdditionalImages...)
	}
	if l.images != nil {
		c.images = append([]string(nil), l.images...)
	}

	return &c
}

func buildImages(primary string, additional []string) []string {
	images := make([]string, 0, len(additional)+1)
	if primary != "" {
		images = append(images, primary)
	}
	for _, img := range additional {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}
