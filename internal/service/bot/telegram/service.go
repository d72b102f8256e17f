// Package telegram 텔레그램 그룹 채팅의 업데이트를 bot.Handler로 전달하고 응답을 텔레그램 메시지로 전송합니다.
//
// 텔레그램에는 임베드가 없으므로 미리보기는 사진 + HTML 캡션(이미지가 없으면 HTML 본문)으로 보내고,
// 버튼은 인라인 키보드, 요청자에게만 보이는 응답은 콜백 알림으로 대신합니다.
package telegram

import (
	"context"
	"sync"

	"github.com/darkkaiser/listing-bot/internal/config"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "bot.telegram"

// platform 메시지 키에 사용하는 플랫폼 이름
const platform = "telegram"

const (
	// pollingTimeout Long Polling 대기 시간 (초)
	pollingTimeout = 60

	// 전역 전송 속도 제한. 텔레그램은 봇 전체 기준 초당 30건을 넘기면 429를 반환합니다.
	sendRateLimit = 25
	sendRateBurst = 5
)

var allowedUpdates = []string{"message", "edited_message", "callback_query", "my_chat_member"}

// Service 텔레그램 봇 서비스입니다. bot.Messenger를 구현합니다.
type Service struct {
	cfg     config.TelegramConfig
	debug   bool
	handler *bot.Handler

	// newClient 테스트에서 목 클라이언트를 주입하기 위한 생성 함수
	newClient func(cfg config.TelegramConfig, debug bool) (client, error)

	client  client
	self    tgbotapi.User
	limiter *rate.Limiter

	allowedChats map[int64]struct{}

	// contents 수정 이벤트에서 본문이 바뀌었는지 비교하기 위해 마지막으로 받은 본문을 기억합니다.
	contents *contentMemory

	// workerSemaphore 동시에 처리하는 업데이트 수를 제한합니다.
	workerSemaphore chan struct{}

	running   bool
	runningMu sync.Mutex
}

var _ bot.Messenger = (*Service)(nil)

// NewService Service 인스턴스를 생성합니다.
func NewService(cfg config.TelegramConfig, debug bool, handler *bot.Handler) *Service {
	if handler == nil {
		panic("bot.Handler는 필수입니다")
	}

	allowed := make(map[int64]struct{}, len(cfg.AllowedChatIDs))
	for _, id := range cfg.AllowedChatIDs {
		allowed[id] = struct{}{}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Service{
		cfg:     cfg,
		debug:   debug,
		handler: handler,

		newClient: newTelegramClient,

		limiter: rate.NewLimiter(sendRateLimit, sendRateBurst),

		allowedChats: allowed,

		contents: newContentMemory(maxRememberedContents),

		workerSemaphore: make(chan struct{}, workers),
	}
}

// Start 텔레그램 봇 API 클라이언트를 만들고 Long Polling 수신 루프를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("텔레그램 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("텔레그램 서비스가 이미 시작됨!!!")
		return nil
	}

	c, err := s.newClient(s.cfg, s.debug)
	if err != nil {
		defer serviceStopWG.Done()
		return err
	}
	s.client = c
	s.self = c.GetSelf()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollingTimeout
	u.AllowedUpdates = allowedUpdates

	updateC := c.GetUpdatesChan(u)

	s.running = true

	go s.run(serviceStopCtx, serviceStopWG, updateC)

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username":  s.self.UserName,
		"allowed_chats": len(s.allowedChats),
		"workers":       cap(s.workerSemaphore),
	}).Info("텔레그램 서비스 시작됨")

	return nil
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, updateC tgbotapi.UpdatesChannel) {
	defer serviceStopWG.Done()

	workers := &sync.WaitGroup{}
	defer func() {
		s.client.StopReceivingUpdates()
		workers.Wait()
		s.handler.Wait()

		s.runningMu.Lock()
		s.running = false
		s.runningMu.Unlock()

		applog.WithComponent(component).Info("텔레그램 서비스 중지됨")
	}()

	s.receiveAndDispatch(serviceStopCtx, updateC, workers)
}

// receiveAndDispatch 업데이트를 수신하여 워커 고루틴으로 넘깁니다.
// 워커가 모두 사용 중이면 업데이트를 버리고 경고를 남깁니다.
func (s *Service) receiveAndDispatch(serviceStopCtx context.Context, updateC tgbotapi.UpdatesChannel, workers *sync.WaitGroup) {
	for {
		select {
		case update, ok := <-updateC:
			if !ok {
				applog.WithComponent(component).Error("Long Polling 채널 종료됨: 업데이트 수신 루프 종료")
				return
			}

			chatID, ok := chatIDOf(update)
			if !ok || !s.isAllowedChat(chatID) {
				continue
			}

			select {
			case s.workerSemaphore <- struct{}{}:
				workers.Add(1)
				go func(update tgbotapi.Update) {
					defer workers.Done()
					defer func() { <-s.workerSemaphore }()
					s.handleUpdate(serviceStopCtx, update)
				}(update)

			case <-serviceStopCtx.Done():
				return

			default:
				applog.WithComponentAndFields(component, applog.Fields{
					"chat_id":            chatID,
					"update_id":          update.UpdateID,
					"semaphore_capacity": cap(s.workerSemaphore),
				}).Warn("업데이트 처리 용량 초과로 요청 드롭됨")
			}

		case <-serviceStopCtx.Done():
			return
		}
	}
}

func (s *Service) isAllowedChat(chatID int64) bool {
	if len(s.allowedChats) == 0 {
		return true
	}
	_, ok := s.allowedChats[chatID]
	return ok
}

// chatIDOf 처리 대상 업데이트의 채팅 ID를 반환합니다. 처리하지 않는 업데이트는 false입니다.
func chatIDOf(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.EditedMessage != nil && update.EditedMessage.Chat != nil:
		return update.EditedMessage.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.MyChatMember != nil:
		return update.MyChatMember.Chat.ID, true
	default:
		return 0, false
	}
}
