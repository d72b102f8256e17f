package log

import (
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobalState Setup()의 sync.Once와 전역 logrus 상태를 초기화합니다.
func resetGlobalState() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
}

func TestSetup_Defaults(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	cl, err := Setup(Options{Name: "defaults-app", Dir: t.TempDir()})
	require.NoError(t, err)
	defer cl.Close()

	assert.Equal(t, InfoLevel, logrus.GetLevel())

	c, ok := cl.(*closer)
	require.True(t, ok)
	require.Len(t, c.closers, 1, "critical/verbose 로그가 비활성화되어 있으면 main 파일만 생성되어야 합니다")
}

func TestSetup_WritesFiles(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	dir := t.TempDir()
	cl, err := Setup(Options{
		Name:              "files-app",
		Dir:               dir,
		Level:             TraceLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	})
	require.NoError(t, err)

	WithComponent("test").Info("info message")
	WithComponent("test").Error("error message")
	WithComponent("test").Debug("debug message")

	require.NoError(t, cl.Close())

	assert.FileExists(t, filepath.Join(dir, "files-app.log"))
	assert.FileExists(t, filepath.Join(dir, "files-app.critical.log"))
	assert.FileExists(t, filepath.Join(dir, "files-app.verbose.log"))
}

func TestSetup_Once(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	dir := t.TempDir()
	first, err := Setup(Options{Name: "once-app", Dir: dir})
	require.NoError(t, err)
	defer first.Close()

	second, err := Setup(Options{Name: "other-app", Dir: dir})
	require.NoError(t, err)

	assert.Same(t, first, second, "두 번째 호출은 최초 결과를 그대로 반환해야 합니다")
}

func TestSetup_Close_Idempotent(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	cl, err := Setup(Options{Name: "close-app", Dir: t.TempDir()})
	require.NoError(t, err)

	assert.NoError(t, cl.Close())
	assert.NoError(t, cl.Close())
}

func TestNewTextFormatter_CallerPrettyfier(t *testing.T) {
	f := newTextFormatter("github.com/darkkaiser/listing-bot")

	fn, file := f.CallerPrettyfier(&runtime.Frame{
		Function: "github.com/darkkaiser/listing-bot/internal/service/bot.(*Handler).HandleMessage",
		Line:     42,
	})

	assert.Equal(t, ".../internal/service/bot.(*Handler).HandleMessage(line:42)", fn)
	assert.Empty(t, file)
}
