package link

// Provider 링크를 처리할 매물 공급자입니다.
type Provider int

const (
	// None 인식하지 못한 링크
	None Provider = iota

	// Ebay 경매 마켓플레이스
	Ebay

	// Amazon 일반 쇼핑몰
	Amazon

	// Shpock 중고 거래(분류 광고)
	Shpock
)

var providerNames = [...]string{
	None:   "none",
	Ebay:   "ebay",
	Amazon: "amazon",
	Shpock: "shpock",
}

func (p Provider) String() string {
	if p < 0 || int(p) >= len(providerNames) {
		return "unknown"
	}
	return providerNames[p]
}

// Providers 분류 우선순위 순서의 공급자 목록입니다.
func Providers() []Provider {
	return []Provider{Ebay, Amazon, Shpock}
}
