// Package testutil 여러 패키지의 테스트에서 공통으로 사용하는 헬퍼를 제공합니다.
package testutil

import (
	"net"
	"strconv"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/stretchr/testify/require"
)

// FreePort 테스트 서버가 사용할 수 있는 로컬 포트를 하나 할당받아 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err, "사용 가능한 포트를 가져오지 못했습니다")
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForServer 서버가 port에서 연결을 받을 때까지 대기합니다.
func WaitForServer(port int, timeout time.Duration) error {
	addr := net.JoinHostPort("localhost", strconv.Itoa(port))

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return apperrors.Newf(apperrors.Timeout, "서버가 %v 안에 포트 %d에서 시작되지 않았습니다", timeout, port)
}
