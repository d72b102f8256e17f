package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

var (
	// 텔레그램 봇 토큰 형식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
	telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

	// Shpock URL의 언어-국가 경로 (예: en-gb, de-at)
	localeSegmentRegex = regexp.MustCompile(`^[a-z]{2}-[a-z]{2}$`)
)

// newValidator 커스텀 규칙이 등록된 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 JSON 키를 노출한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"telegram_bot_token": validateTelegramBotToken,
		"cron_spec":          validateCronSpec,
		"duration":           validateDuration,
		"locale_segment":     validateLocaleSegment,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
		}
	}

	return v
}

func validateTelegramBotToken(fl validator.FieldLevel) bool {
	return telegramBotTokenRegex.MatchString(fl.Field().String())
}

func validateCronSpec(fl validator.FieldLevel) bool {
	return cronx.Validate(fl.Field().String()) == nil
}

// validateDuration 0보다 큰 time.ParseDuration 형식의 문자열인지 검사합니다.
func validateDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d > 0
}

func validateLocaleSegment(fl validator.FieldLevel) bool {
	return localeSegmentRegex.MatchString(fl.Field().String())
}

// checkStruct 구조체를 검증하고 첫 번째 실패 항목을 사용자 친화적인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 설정 검증에 실패했습니다", contextName))
	}

	firstErr := validationErrors[0]

	switch firstErr.Tag() {
	case "required", "required_if", "required_with":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정의 필수 항목(%s)이 누락되었습니다", contextName, firstErr.Field()))

	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 BotToken 형식이 올바르지 않습니다 (올바른 형식: 123456:ABC-DEF...)")

	case "cron_spec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정의 Cron 표현식(%s)이 올바르지 않습니다: '%v' (예: @every 1h, 0 0 * * * *)", contextName, firstErr.Field(), firstErr.Value()))

	case "duration":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정의 시간 값(%s)이 올바르지 않습니다: '%v' (예: 45s, 1m30s)", contextName, firstErr.Field(), firstErr.Value()))

	case "locale_segment":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정의 로케일(%s)은 xx-yy 형식이어야 합니다: '%v'", contextName, firstErr.Field(), firstErr.Value()))

	case "url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정의 URL(%s) 형식이 올바르지 않습니다: '%v'", contextName, firstErr.Field(), firstErr.Value()))

	case "min", "max":
		if firstErr.StructField() == "ListenPort" {
			return apperrors.New(apperrors.InvalidInput, "API 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
		}
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Field(), firstErr.Tag()))
}
