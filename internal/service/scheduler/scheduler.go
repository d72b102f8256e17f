// Package scheduler 매물 캐시와 미리보기 세션을 주기적으로 비우는 서비스입니다.
package scheduler

import (
	"context"
	"sync"

	"github.com/darkkaiser/listing-bot/pkg/cronx"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// Flusher 주기적으로 비울 저장소입니다. 비운 항목 수를 반환합니다.
type Flusher interface {
	Clear() int
}

// Target 이름이 붙은 Flusher
type Target struct {
	Name    string
	Flusher Flusher
}

// Scheduler 설정된 주기(FlushSpec)마다 모든 Target을 비웁니다.
//
// 캐시가 비워진 뒤에는 기존 미리보기의 버튼이 만료 안내로 응답하므로
// 매물 캐시와 세션 저장소를 같은 작업에서 함께 비웁니다.
type Scheduler struct {
	flushSpec string
	targets   []Target

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(flushSpec string, targets ...Target) *Scheduler {
	for _, t := range targets {
		if t.Flusher == nil {
			panic("Flusher는 필수입니다")
		}
	}

	return &Scheduler{
		flushSpec: flushSpec,
		targets:   targets,
	}
}

// Start 스케줄러를 시작하고 캐시 비우기 작업을 Cron 엔진에 등록합니다.
//
// 반환값:
//   - error: FlushSpec이 올바른 Cron 표현식이 아닌 경우
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// 1. Cron 엔진 초기화
	// - StandardParser: 초 단위 6필드 형식과 @every 등의 Descriptor 지원
	// - Recover: Panic 발생 시 복구하여 다음 실행에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	// 2. 작업 등록
	if _, err := c.AddFunc(s.flushSpec, func() { s.Flush() }); err != nil {
		serviceStopWG.Done()
		return NewErrInvalidFlushSpec(s.flushSpec, err)
	}

	// 3. 스케줄러 시작
	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"flush_spec": s.flushSpec,
		"targets":    len(s.targets),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	// 4. 종료 신호 대기
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

// stop 실행 중인 스케줄러를 중지하고 실행 중인 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// Flush 모든 Target을 비우고 Target 이름별로 비운 항목 수를 반환합니다.
func (s *Scheduler) Flush() map[string]int {
	cleared := make(map[string]int, len(s.targets))
	fields := applog.Fields{}

	for _, t := range s.targets {
		n := t.Flusher.Clear()
		cleared[t.Name] = n
		fields[t.Name] = n
	}

	applog.WithComponentAndFields(component, fields).Info("캐시를 비웠습니다")

	return cleared
}
