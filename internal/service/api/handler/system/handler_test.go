package system

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/listing-bot/internal/pkg/version"
	"github.com/darkkaiser/listing-bot/internal/service/api/constants"
	"github.com/darkkaiser/listing-bot/internal/service/api/model/system"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/darkkaiser/listing-bot/internal/service/provider/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(providers ...link.Provider) *provider.Registry {
	r := provider.NewRegistry(listing.NewCache())
	for _, p := range providers {
		r.MustRegister(mocks.NewMockAdapter(p))
	}
	return r
}

func serve(t *testing.T, h echo.HandlerFunc, target string, v any) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)

	require.NoError(t, h(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
	return rec
}

func TestNewHandler_Panics(t *testing.T) {
	assert.PanicsWithValue(t, constants.PanicMsgRegistryRequired, func() {
		NewHandler(nil, preview.NewSessionStore(), version.Info{})
	})
	assert.PanicsWithValue(t, constants.PanicMsgSessionsRequired, func() {
		NewHandler(newRegistry(), nil, version.Info{})
	})
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name       string
		registered []link.Provider
		wantStatus string
		wantDeps   map[string]string
	}{
		{
			name:       "모든 공급자 등록",
			registered: []link.Provider{link.Ebay, link.Amazon, link.Shpock},
			wantStatus: constants.HealthStatusHealthy,
			wantDeps:   map[string]string{"ebay": "healthy", "amazon": "healthy", "shpock": "healthy"},
		},
		{
			name:       "eBay 미설정",
			registered: []link.Provider{link.Amazon, link.Shpock},
			wantStatus: constants.HealthStatusHealthy,
			wantDeps:   map[string]string{"ebay": "disabled", "amazon": "healthy", "shpock": "healthy"},
		},
		{
			name:       "등록된 공급자 없음",
			wantStatus: constants.HealthStatusUnhealthy,
			wantDeps:   map[string]string{"ebay": "disabled", "amazon": "disabled", "shpock": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newRegistry(tt.registered...), preview.NewSessionStore(), version.Info{})

			var resp system.HealthResponse
			rec := serve(t, h.HealthCheckHandler, "/health", &resp)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))

			got := make(map[string]string, len(resp.Dependencies))
			for name, dep := range resp.Dependencies {
				got[name] = dep.Status
			}
			assert.Equal(t, tt.wantDeps, got)
		})
	}
}

func TestVersionHandler(t *testing.T) {
	info := version.Info{Version: "1.2.0", Commit: "abc1234", BuildDate: "2026-10-01", GoVersion: "go1.24.0"}
	h := NewHandler(newRegistry(), preview.NewSessionStore(), info)

	var resp system.VersionResponse
	serve(t, h.VersionHandler, "/version", &resp)

	assert.Equal(t, system.VersionResponse{
		Version:   "1.2.0",
		Commit:    "abc1234",
		BuildDate: "2026-10-01",
		GoVersion: "go1.24.0",
	}, resp)
}

func TestStatsHandler(t *testing.T) {
	registry := newRegistry(link.Ebay)
	registry.Cache().Set("123456789012", &listing.Listing{ID: "123456789012"})

	sessions := preview.NewSessionStore()
	sessions.Put("discord:c1:m1", preview.Session{ItemID: "123456789012"})
	sessions.Put("discord:c1:m2", preview.Session{ItemID: "123456789012"})

	h := NewHandler(registry, sessions, version.Info{})

	var resp system.StatsResponse
	serve(t, h.StatsHandler, "/api/v1/stats", &resp)

	assert.Equal(t, system.StatsResponse{Listings: 1, Sessions: 2}, resp)
}
