package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrich(t *testing.T) {
	orig := readBuildInfo
	defer func() { readBuildInfo = orig }()

	t.Run("VCS 정보로 누락 값 보강", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "f25b8bf0123456789"},
					{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, true
		}

		bi := enrich(Info{})

		assert.Equal(t, "v0.3.1", bi.Version)
		assert.Equal(t, "f25b8bf0123456789", bi.Commit)
		assert.Equal(t, "2026-01-01T00:00:00Z", bi.BuildDate)
		assert.True(t, bi.DirtyBuild)
		assert.Equal(t, runtime.Version(), bi.GoVersion)
	})

	t.Run("주입된 값 우선", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main:     debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}},
			}, true
		}

		bi := enrich(Info{Version: "v1.0.0", Commit: "abc1234"})

		assert.Equal(t, "v1.0.0", bi.Version)
		assert.Equal(t, "abc1234", bi.Commit)
	})

	t.Run("빌드 정보 없음", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		bi := enrich(Info{})

		assert.Equal(t, unknown, bi.Version)
		assert.Equal(t, unknown, bi.Commit)
	})
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"빈 값", Info{}, "unknown"},
		{"버전만", Info{Version: "v1.0.0", Commit: unknown}, "v1.0.0"},
		{
			"전체",
			Info{Version: "v1.0.0", Commit: "f25b8bf0123", DirtyBuild: true, GoVersion: "go1.24.11", OS: "linux", Arch: "amd64"},
			"v1.0.0+dirty (commit: f25b8bf, go_version: go1.24.11, os: linux, arch: amd64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestGet(t *testing.T) {
	bi := Get()

	assert.NotEmpty(t, bi.Version)
	assert.Equal(t, bi, Get(), "Get은 항상 같은 값을 반환해야 합니다")
	assert.Equal(t, bi.Version, Version())
	assert.Equal(t, bi.Version, bi.ToMap()["version"])
}
