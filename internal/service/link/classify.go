package link

import (
	"regexp"
)

var (
	// EbayHostPattern 1번 그룹은 최상위 도메인입니다. (com, de, co.uk ...)
	EbayHostPattern = regexp.MustCompile(`^(?:www\.)?ebay\.([a-z]{2,3}(?:\.[a-z]{2,3})?)$`)
	ebayPathPattern = regexp.MustCompile(`(?i)^/(?:itm|i)(?:/|$)`)

	// AmazonHostPattern 호스트 전체를 캡처합니다.
	AmazonHostPattern = regexp.MustCompile(`^(?:www\.)?amazon(?:\.[a-z]{2,3}){1,2}$`)
	// AmazonPathPattern 1번 그룹은 10자리 상품 ID입니다.
	AmazonPathPattern = regexp.MustCompile(`/(?:dp|product)/([A-Za-z0-9]{10})(?:[/?#]|$)`)

	shpockHostPattern = regexp.MustCompile(`^(?:www\.)?shpock\.com$`)
	// ShpockPathPattern 1번 그룹은 16자리 매물 ID입니다.
	ShpockPathPattern = regexp.MustCompile(`(?i)^(?:/[a-z]{2}-[a-z]{2})?/i/([^/?#]{16})(?:[/?#]|$)`)
)

type rule struct {
	provider Provider
	match    func(host, path string) bool
}

// rules 분류 우선순위(경매 → 쇼핑몰 → 중고 거래) 순서입니다.
var rules = []rule{
	{Ebay, func(host, path string) bool {
		return EbayHostPattern.MatchString(host) && ebayPathPattern.MatchString(path)
	}},
	{Amazon, func(host, path string) bool {
		return AmazonHostPattern.MatchString(host) && AmazonPathPattern.MatchString(path)
	}},
	{Shpock, func(host, path string) bool {
		return shpockHostPattern.MatchString(host) && ShpockPathPattern.MatchString(path)
	}},
}

// Classify URL을 처리할 공급자를 반환합니다. 어떤 규칙에도 맞지 않으면 None입니다.
// 규칙은 rules 순서대로 검사하며 처음 일치한 공급자가 선택됩니다.
func Classify(rawURL string) Provider {
	u, err := Normalize(rawURL)
	if err != nil || u.Host == "" {
		return None
	}

	host := u.Hostname()
	for _, r := range rules {
		if r.match(host, u.EscapedPath()) {
			return r.provider
		}
	}

	return None
}
