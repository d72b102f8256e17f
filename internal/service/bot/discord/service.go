// Package discord 디스코드 Gateway 이벤트를 bot.Handler로 전달하고 응답을 디스코드 메시지로 전송합니다.
package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/darkkaiser/listing-bot/internal/config"
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
	"golang.org/x/time/rate"
)

const component = "bot.discord"

// platform 메시지 키에 사용하는 플랫폼 이름
const platform = "discord"

const intents = discordgo.IntentGuilds |
	discordgo.IntentGuildMessages |
	discordgo.IntentGuildMessageReactions |
	discordgo.IntentMessageContent

// Service 디스코드 봇 서비스입니다. bot.Messenger와 bot.Reactor를 구현합니다.
type Service struct {
	cfg     config.DiscordConfig
	handler *bot.Handler

	// newSession 테스트에서 Gateway 연결 없이 목 세션을 주입하기 위한 생성 함수
	newSession func(cfg config.DiscordConfig) (session, error)

	session   session
	limiter   *rate.Limiter
	reactions *reactionWaiters

	// serviceStopCtx 이벤트 처리에 사용하는 서비스 컨텍스트
	serviceStopCtx context.Context

	stateMu   sync.RWMutex
	botUserID string
	iconURL   string

	// knownGuilds Ready 시점에 이미 참여 중이던 서버. 이후 GuildCreate는 새 서버 초대로 간주합니다.
	knownGuilds map[string]struct{}

	// inflight 처리 중인 이벤트. closed 이후에는 새 이벤트를 받지 않습니다.
	inflightMu sync.Mutex
	inflight   sync.WaitGroup
	closed     bool

	running   bool
	runningMu sync.Mutex
}

var (
	_ bot.Messenger = (*Service)(nil)
	_ bot.Reactor   = (*Service)(nil)
)

// NewService Service 인스턴스를 생성합니다.
func NewService(cfg config.DiscordConfig, handler *bot.Handler) *Service {
	if handler == nil {
		panic("bot.Handler는 필수입니다")
	}

	limit := rate.Inf
	if cfg.SendRatePerSecond > 0 {
		limit = rate.Limit(cfg.SendRatePerSecond)
	}
	burst := cfg.SendBurst
	if burst < 1 {
		burst = 1
	}

	return &Service{
		cfg:     cfg,
		handler: handler,

		newSession: newDiscordSession,

		limiter:   rate.NewLimiter(limit, burst),
		reactions: newReactionWaiters(),

		knownGuilds: make(map[string]struct{}),
	}
}

func newDiscordSession(cfg config.DiscordConfig) (session, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	dg.Identify.Intents = intents

	// 수정 이벤트에서 이전 본문을 비교하려면 State에 메시지를 보관해야 합니다.
	dg.State.MaxMessageCount = cfg.MaxMessageCount

	return dg, nil
}

// Start Gateway에 연결하고 이벤트 수신을 시작합니다.
//
// 연결 이후의 처리는 discordgo가 관리하는 고루틴에서 이루어지며, serviceStopCtx가 취소되면
// 진행 중인 이벤트와 반응 대기가 끝날 때까지 기다린 뒤 연결을 닫습니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("디스코드 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("디스코드 서비스가 이미 시작됨!!!")
		return nil
	}

	sess, err := s.newSession(s.cfg)
	if err != nil {
		defer serviceStopWG.Done()
		return apperrors.Wrap(err, apperrors.InvalidInput, "디스코드 세션을 생성하지 못했습니다")
	}

	s.session = sess
	s.serviceStopCtx = serviceStopCtx

	removers := []func(){
		sess.AddHandler(s.handleReady),
		sess.AddHandler(s.handleGuildCreate),
		sess.AddHandler(s.handleMessageCreate),
		sess.AddHandler(s.handleMessageUpdate),
		sess.AddHandler(s.handleMessageReactionAdd),
		sess.AddHandler(s.handleInteractionCreate),
	}

	if err := sess.Open(); err != nil {
		for _, remove := range removers {
			remove()
		}
		defer serviceStopWG.Done()
		return apperrors.Wrap(err, apperrors.Unavailable, "디스코드 Gateway에 연결하지 못했습니다")
	}

	s.running = true

	go s.waitForShutdown(serviceStopCtx, serviceStopWG, removers)

	applog.WithComponentAndFields(component, applog.Fields{
		"token": strutil.Mask(s.cfg.Token),
	}).Info("디스코드 서비스 시작됨")

	return nil
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, removers []func()) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("디스코드 서비스 중지중...")

	for _, remove := range removers {
		remove()
	}

	s.inflightMu.Lock()
	s.closed = true
	s.inflightMu.Unlock()

	s.inflight.Wait()
	s.handler.Wait()

	if err := s.session.Close(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("디스코드 세션 종료 중 오류가 발생했습니다")
	}

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("디스코드 서비스 중지됨")
}

// beginEvent 이벤트 처리를 시작할 수 있으면 true를 반환합니다. 반환값이 true이면 처리 후 endEvent를 호출해야 합니다.
func (s *Service) beginEvent() bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	if s.closed {
		return false
	}
	s.inflight.Add(1)
	return true
}

func (s *Service) endEvent() {
	s.inflight.Done()
}

func (s *Service) botUser() (id, iconURL string) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.botUserID, s.iconURL
}
