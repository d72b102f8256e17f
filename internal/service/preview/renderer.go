package preview

import (
	"strings"

	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
)

// RenderOptions 렌더링 옵션입니다.
type RenderOptions struct {
	// Interactive 버튼을 붙일지 여부
	Interactive bool

	// BotIconURL 작성자 블록에 표시할 봇 아이콘
	BotIconURL string
}

// Render 매물의 index번째 이미지로 미리보기를 만듭니다.
// index가 범위를 벗어나면 가장 가까운 유효한 위치로 보정합니다.
func Render(l *listing.Listing, index int, requesterTag string, opts RenderOptions) *Preview {
	count := l.ImageCount()
	index = clampIndex(index, count)

	p := &Preview{
		Color:         Color(l.Provider),
		AuthorName:    l.Title,
		AuthorURL:     l.CanonicalURL,
		AuthorIconURL: opts.BotIconURL,
		Description:   l.Description,
		ImageURL:      l.ImageAt(index),
		Footer:        Footer(l.Price, l.AuctionType, requesterTag),
	}

	if opts.Interactive {
		p.Controls = controls(index, count)
	}

	return p
}

// RenderError 예기치 못한 오류가 발생했을 때의 미리보기입니다.
func RenderError() *Preview {
	return &Preview{
		Color:       ColorError,
		Title:       errorTitle,
		Description: errorDescription,
		Footer:      errorFooter,
	}
}

// Color 공급자별 강조 색상입니다.
func Color(p link.Provider) int {
	switch p {
	case link.Ebay:
		return ColorEbay
	case link.Amazon:
		return ColorAmazon
	case link.Shpock:
		return ColorShpock
	default:
		return ColorError
	}
}

// Footer 가격, 판매 방식, 요청자를 이어 붙입니다. 비어 있는 항목과 그 구분자는 생략합니다.
//
//	"£100.00 BIN - Requested by alice#0001"
//	"£19.99 - Requested by alice#0001"
//	"Requested by alice#0001"
func Footer(price, auctionType, requesterTag string) string {
	head := strutil.JoinNonEmpty(" ", strings.TrimSpace(price), strings.TrimSpace(auctionType))
	if requesterTag == "" {
		return head
	}
	return strutil.JoinNonEmpty(footerSeparator, head, requestedByPrefix+requesterTag)
}

// RequesterFromFooter 꼬리말에서 요청자 태그를 복원합니다. 찾지 못하면 빈 문자열입니다.
func RequesterFromFooter(footer string) string {
	last := footer
	if i := strings.LastIndex(footer, footerSeparator); i >= 0 {
		last = footer[i+len(footerSeparator):]
	}
	if !strings.HasPrefix(last, requestedByPrefix) {
		return ""
	}
	return strings.TrimPrefix(last, requestedByPrefix)
}

// controls 이미지가 두 장 이상이면 다음/이전 버튼을, 항상 삭제 버튼을 붙입니다.
func controls(index, count int) []Control {
	var cs []Control

	if count > 1 {
		cs = append(cs,
			Control{Action: ActionNext, Label: "Next", Emoji: "➡️", Style: StyleSecondary, Disabled: index >= count-1},
			Control{Action: ActionPrevious, Label: "Previous", Emoji: "⬅️", Style: StyleSecondary, Disabled: index <= 0},
		)
	}
	cs = append(cs, Control{Action: ActionDelete, Label: "Delete", Emoji: "✖️", Style: StyleDanger})

	return cs
}

func clampIndex(index, count int) int {
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
