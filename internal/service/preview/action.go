package preview

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Action 미리보기 버튼이 요청하는 동작입니다.
type Action string

const (
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionDelete   Action = "delete"
)

// ParseAction 플랫폼에서 받은 버튼 식별자를 Action으로 변환합니다.
// 대소문자와 구분자 차이("Next", "NEXT", " delete ")는 무시합니다.
func ParseAction(customID string) (Action, bool) {
	switch a := Action(strcase.ToSnake(strings.TrimSpace(customID))); a {
	case ActionNext, ActionPrevious, ActionDelete:
		return a, true
	default:
		return "", false
	}
}
