// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백(개행 포함)을 하나로 축약합니다.
// 예: "  hello \n  world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 문자열을 최대 max개의 룬으로 자릅니다. 잘린 경우 마지막 룬을 "…"로 대체합니다.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// CountFold 대소문자를 구분하지 않고 s에 포함된 substr의 개수를 셉니다. (겹치지 않는 기준)
func CountFold(s, substr string) int {
	return strings.Count(strings.ToLower(s), strings.ToLower(substr))
}

// ReplaceFold 대소문자를 구분하지 않고 s에 포함된 old를 모두 new로 치환합니다.
func ReplaceFold(s, old, new string) string {
	if old == "" {
		return s
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(old))
	return re.ReplaceAllLiteralString(s, new)
}

// FirstNonEmpty 공백을 제외했을 때 비어 있지 않은 첫 번째 값을 반환합니다.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// JoinNonEmpty 비어 있지 않은 값만 sep로 연결합니다.
// 예: JoinNonEmpty(" ", "£10.00", "") -> "£10.00"
func JoinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// Mask 토큰이나 비밀 키를 로그에 남길 때 앞 4자리만 노출하고 나머지를 가립니다.
// 12자 이하의 값은 전체를 가립니다.
func Mask(data string) string {
	if data == "" {
		return ""
	}
	if len(data) <= 12 {
		return "***"
	}
	return data[:4] + "***"
}
