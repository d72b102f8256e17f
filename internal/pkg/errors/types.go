package errors

import "strconv"

// ErrorType 에러의 종류를 나타냅니다.
// 사용자에게 어떤 응답을 보낼지는 대부분 NotFound 여부로 결정됩니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (예상하지 못한 상태, 버그 등)
	Internal

	// System 네트워크, 파일 시스템 등 인프라 수준의 장애
	System

	// InvalidInput 설정값 또는 입력값 검증 실패
	InvalidInput

	// Forbidden 채널 권한 부족 등 작업이 허용되지 않는 상태
	Forbidden

	// NotFound 매물을 찾을 수 없거나 지원하지 않는 링크
	NotFound

	// ExecutionFailed 외부 API 호출 또는 페이지 수집 실패
	ExecutionFailed

	// ParsingFailed HTML/JSON 응답 해석 실패
	ParsingFailed

	// Timeout 요청 시간 초과
	Timeout

	// Unavailable 외부 서비스의 일시적 사용 불가 (5xx, 429 등)
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	Forbidden:       "Forbidden",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
