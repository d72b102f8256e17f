// Package system 헬스체크, 버전, 캐시 현황 엔드포인트를 처리합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/listing-bot/internal/pkg/version"
	"github.com/darkkaiser/listing-bot/internal/service/api/constants"
	"github.com/darkkaiser/listing-bot/internal/service/api/model/system"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	registry *provider.Registry
	sessions *preview.SessionStore

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(registry *provider.Registry, sessions *preview.SessionStore, buildInfo version.Info) *Handler {
	if registry == nil {
		panic(constants.PanicMsgRegistryRequired)
	}
	if sessions == nil {
		panic(constants.PanicMsgSessionsRequired)
	}

	return &Handler{
		registry: registry,
		sessions: sessions,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

func logRequest(c echo.Context, endpoint, msg string) {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  endpoint,
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(msg)
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 공급자별 어댑터 등록 상태를 확인합니다.
// @Description 등록된 공급자가 하나도 없으면 unhealthy입니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	logRequest(c, "/health", constants.LogMsgHealthCheck)

	deps := make(map[string]system.DependencyStatus, len(link.Providers()))
	status := constants.HealthStatusUnhealthy

	for _, p := range link.Providers() {
		if h.registry.Supports(p) {
			deps[p.String()] = system.DependencyStatus{
				Status:  constants.HealthStatusHealthy,
				Message: constants.MsgProviderRegistered,
			}
			status = constants.HealthStatusHealthy
		} else {
			deps[p.String()] = system.DependencyStatus{
				Status:  constants.HealthStatusDisabled,
				Message: constants.MsgProviderUnconfigured,
			}
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 버전, Git 커밋, 빌드 날짜, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	logRequest(c, "/version", constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
	})
}

// StatsHandler godoc
// @Summary 캐시 현황
// @Description 메모리에 캐시된 매물 수와 미리보기 세션 수를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.StatsResponse "캐시 현황"
// @Router /api/v1/stats [get]
func (h *Handler) StatsHandler(c echo.Context) error {
	logRequest(c, "/api/v1/stats", constants.LogMsgStats)

	return c.JSON(http.StatusOK, system.StatsResponse{
		Listings: h.registry.Cache().Len(),
		Sessions: h.sessions.Len(),
	})
}
