package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/listing-bot/internal/config"
	"github.com/darkkaiser/listing-bot/internal/pkg/version"
	"github.com/darkkaiser/listing-bot/internal/service/api/constants"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/darkkaiser/listing-bot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T, port int) *Service {
	t.Helper()

	return NewService(
		config.APIConfig{Enabled: true, ListenPort: port},
		true,
		provider.NewRegistry(listing.NewCache()),
		preview.NewSessionStore(),
		version.Info{Version: "1.0.0"},
	)
}

func waitGroupDone(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("서비스가 제한 시간 안에 종료되지 않았습니다")
	}
}

func TestNewService_Panics(t *testing.T) {
	assert.PanicsWithValue(t, constants.PanicMsgRegistryRequired, func() {
		NewService(config.APIConfig{}, false, nil, preview.NewSessionStore(), version.Info{})
	})
	assert.PanicsWithValue(t, constants.PanicMsgSessionsRequired, func() {
		NewService(config.APIConfig{}, false, provider.NewRegistry(listing.NewCache()), nil, version.Info{})
	})
}

func TestService_Lifecycle(t *testing.T) {
	port := testutil.FreePort(t)
	s := newTestService(t, port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))
	require.NoError(t, testutil.WaitForServer(port, 2*time.Second))

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%d/version", port))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"version":"1.0.0"`)

	// 중복 시작은 WaitGroup을 바로 완료합니다.
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	s.runningMu.Lock()
	assert.True(t, s.running)
	s.runningMu.Unlock()

	cancel()
	waitGroupDone(t, &wg, constants.ShutdownTimeout+time.Second)

	s.runningMu.Lock()
	assert.False(t, s.running)
	s.runningMu.Unlock()
}

// TestService_PortInUse 포트를 사용할 수 없으면 서버가 먼저 종료되고 서비스도 정리됩니다.
func TestService_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	_, portStr, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	s := newTestService(t, port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	waitGroupDone(t, &wg, 2*time.Second)

	s.runningMu.Lock()
	assert.False(t, s.running)
	s.runningMu.Unlock()
}
