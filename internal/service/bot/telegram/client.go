package telegram

import (
	"net/http"
	"time"

	"github.com/darkkaiser/listing-bot/internal/config"
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// clientHTTPTimeout Long Polling 대기 시간(60초)보다 길어야 합니다.
const clientHTTPTimeout = 90 * time.Second

// client 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type client interface {
	GetSelf() tgbotapi.User

	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)

	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// tgClient tgbotapi.BotAPI를 임베딩하여 client 인터페이스를 구현합니다.
type tgClient struct {
	*tgbotapi.BotAPI
}

func (c *tgClient) GetSelf() tgbotapi.User {
	return c.Self
}

func newTelegramClient(cfg config.TelegramConfig, debug bool) (client, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutil.Mask(cfg.BotToken),
	}).Debug("텔레그램 봇 API 클라이언트 초기화")

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{
		Timeout: clientHTTPTimeout,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	return &tgClient{BotAPI: botAPI}, nil
}
