// Package cronx 애플리케이션 전역에서 공유하는 Cron 표현식 규칙을 제공합니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식과 Descriptor(@hourly, @every 1h 등)를 해석하는 파서를 반환합니다.
//
// 필드 순서: [초] [분] [시] [일] [월] [요일]
//
// 표준 5필드 형식은 지원하지 않습니다.
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return fmt.Errorf("Cron 표현식이 비어 있습니다")
	}

	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("잘못된 Cron 표현식입니다 (%q, 형식: 초 분 시 일 월 요일 또는 @every <duration>): %w", spec, err)
	}

	return nil
}
