package api

import (
	"time"

	"github.com/darkkaiser/listing-bot/internal/service/api/constants"
	"github.com/darkkaiser/listing-bot/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/listing-bot/internal/service/api/middleware"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성 설정
type HTTPServerConfig struct {
	Debug bool

	// RequestTimeout 요청 하나의 최대 처리 시간. 0이면 DefaultRequestTimeout을 사용합니다.
	RequestTimeout time.Duration
}

// NewHTTPServer 미들웨어 체인이 구성된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 순서:
//  1. PanicRecovery: 이후 모든 미들웨어와 핸들러의 panic을 복구
//  2. RequestID: 로그에 request_id를 남기기 위해 로깅보다 먼저 위치
//  3. Server 헤더 제거
//  4. HTTPLogger: 429, 503 응답도 기록되도록 RateLimiting, Timeout보다 먼저 위치
//  5. RateLimiting
//  6. BodyLimit
//  7. Timeout
//  8. Secure
//
// 라우트는 RegisterRoutes로 별도 등록합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.Secure())

	return e
}
