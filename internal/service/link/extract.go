// Package link 메시지에서 매물 링크를 찾아내고 어느 공급자의 링크인지 분류합니다.
package link

import (
	"net/url"
	"regexp"
	"strings"
)

// urlPattern 스킴이 있거나 없는 URL 형태의 문자열에 일치합니다.
// 스킴이 없는 일치는 경로가 있어야 URL로 인정합니다. (node.js, Mr.Smith 제외)
//
//	https://www.ebay.co.uk/itm/123456789012?hash=x
//	ebay.co.uk/itm/123456789012
var urlPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}(?::\d{1,5})?(?:/[^\s<>"']*)?`)

// trailingPunctuation URL 끝에 붙은 문장 부호입니다.
const trailingPunctuation = ".,;:!?)>]}'\""

var keywords = []string{"ebay", "amazon", "shpock"}

// HasKeyword 메시지에 공급자 이름이 하나라도 포함되어 있는지 확인합니다. (대소문자 무시)
func HasKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Extract 메시지에서 URL 형태의 문자열을 등장 순서대로 반환합니다.
// 찾지 못하면 빈 슬라이스를 반환합니다.
func Extract(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, trailingPunctuation)
		if m == "" || !hasSchemeOrPath(m) {
			continue
		}
		urls = append(urls, m)
	}

	return urls
}

func hasSchemeOrPath(m string) bool {
	lower := strings.ToLower(m)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}
	return strings.Contains(m, "/")
}

// First 메시지의 첫 번째 URL을 반환합니다.
func First(text string) (string, bool) {
	urls := Extract(text)
	if len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}

// Normalize 스킴이 없는 URL에 https://를 붙여 파싱합니다.
func Normalize(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	u.Host = strings.ToLower(u.Host)

	return u, nil
}
