// Package httputil API 응답과 에러 처리를 위한 헬퍼를 제공합니다.
package httputil

import (
	"net/http"

	"github.com/darkkaiser/listing-bot/internal/service/api/constants"
	"github.com/darkkaiser/listing-bot/internal/service/api/model/response"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo의 전역 에러 핸들러입니다.
//
// 모든 에러를 ErrorResponse JSON으로 응답하며, 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else if resp, ok := he.Message.(response.ErrorResponse); ok {
			message = resp.Message
		}
	}

	// 라우트가 없을 때 Echo의 기본 메시지("Not Found") 대신 일관된 메시지를 사용합니다.
	if code == http.StatusNotFound {
		message = constants.ErrMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
