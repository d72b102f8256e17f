// Package service 애플리케이션을 구성하는 백그라운드 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 시작 후 serviceStopCtx가 취소될 때까지 실행되는 서비스입니다.
//
// Start는 호출 전에 serviceStopWG.Add(1)이 되어 있다고 가정하며,
// 실패하거나 이미 실행 중이면 즉시 Done을 호출합니다.
// 정상적으로 시작한 경우에는 종료가 끝난 뒤 Done을 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
