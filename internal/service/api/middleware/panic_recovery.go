package middleware

import (
	"fmt"
	"runtime"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/api/constants"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize 스택 트레이스 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러의 panic을 복구하여 500 응답으로 변환합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				err, ok := r.(error)
				if !ok {
					err = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
				}

				stack := make([]byte, stackBufferSize)
				n := runtime.Stack(stack, false)

				fields := applog.Fields{
					"path":  c.Request().URL.Path,
					"error": err,
					"stack": string(stack[:n]),
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Error("핸들러에서 panic이 발생하여 복구했습니다")

				c.Error(err)
			}()

			return next(c)
		}
	}
}
