package shpock

import (
	"regexp"
	"strings"

	"github.com/darkkaiser/listing-bot/pkg/strutil"
)

const titleSuffix = " for sale | Shpock"

// postcodePattern 영국 우편번호 앞부분 (SE15, M1, W1A ...)
var postcodePattern = regexp.MustCompile(`(?i)^[a-z]{1,2}[0-9][0-9a-z]?$`)

type title struct {
	Title    string
	Location string
	Price    string
}

// parseTitle 메타데이터 제목을 제목, 위치, 가격으로 분리합니다.
//
// 제목은 "<제목> in <위치> for <가격> for sale | Shpock" 형식입니다.
// "in"이 두 번 이상 나오면(대소문자 무시, 단어 일부 포함) 마지막 " in "을, 아니면 첫 번째 " in "을 기준으로 나눕니다.
//
//	"Bike in SE15 London for £50 for sale | Shpock" → {Bike, "London, SE15", £50}
func parseTitle(s string) title {
	s = strings.TrimSpace(strings.Replace(s, titleSuffix, "", 1))

	var idx int
	if strutil.CountFold(s, "in") > 1 {
		idx = strings.LastIndex(s, " in ")
	} else {
		idx = strings.Index(s, " in ")
	}
	if idx < 0 {
		return title{Title: s}
	}

	t := title{Title: strings.TrimSpace(s[:idx])}

	tail := s[idx+len(" in "):]
	location, price, _ := strings.Cut(tail, " for ")
	t.Location = formatLocation(strings.TrimSpace(location))
	t.Price = strings.TrimSpace(price)

	return t
}

// formatLocation 위치 앞의 우편번호를 뒤로 옮깁니다. "SE15 London" → "London, SE15"
func formatLocation(location string) string {
	code, rest, ok := strings.Cut(location, " ")
	if !ok || rest == "" || !postcodePattern.MatchString(code) {
		return location
	}
	return strings.TrimSpace(rest) + ", " + strings.ToUpper(code)
}
