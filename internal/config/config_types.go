package config

import (
	"fmt"
	"time"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultCacheFlushSpec 매물 캐시를 비우는 주기 기본값
	DefaultCacheFlushSpec = "@every 1h"

	// DefaultHTTPTimeout 외부 페이지/API 요청 타임아웃 기본값
	DefaultHTTPTimeout = "15s"

	// DefaultReactionTimeout ❌ 리액션 삭제를 기다리는 시간 기본값
	DefaultReactionTimeout = "45s"

	DefaultEbayAPIBaseURL    = "https://api.ebay.com"
	DefaultEbayTokenURL      = "https://api.ebay.com/identity/v1/oauth2/token"
	DefaultEbayScope         = "https://api.ebay.com/oauth/api_scope"
	DefaultEbayMarketplaceID = "EBAY_GB"
	DefaultEbayLanguage      = "en-GB"

	DefaultAmazonUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:88.0) Gecko/20100101 Firefox/88.0"

	DefaultShpockBaseURL = "https://www.shpock.com"
	DefaultShpockLocale  = "en-gb"

	DefaultAPIListenPort = 2480
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug    bool           `json:"debug"`
	Bot      BotConfig      `json:"bot"`
	Discord  DiscordConfig  `json:"discord"`
	Telegram TelegramConfig `json:"telegram"`
	HTTP     HTTPConfig     `json:"http"`
	Ebay     EbayConfig     `json:"ebay"`
	Amazon   AmazonConfig   `json:"amazon"`
	Shpock   ShpockConfig   `json:"shpock"`
	Cache    CacheConfig    `json:"cache"`
	API      APIConfig      `json:"api"`
}

// validate 각 설정 항목의 필수 값과 형식을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if !c.Discord.Enabled && !c.Telegram.Enabled {
		return apperrors.New(apperrors.InvalidInput, "활성화된 메신저가 없습니다 (discord.enabled 또는 telegram.enabled 중 하나 이상을 설정하세요)")
	}

	sections := []struct {
		name string
		data any
	}{
		{"Bot", c.Bot},
		{"Discord", c.Discord},
		{"Telegram", c.Telegram},
		{"HTTP", c.HTTP},
		{"eBay", c.Ebay},
		{"Amazon", c.Amazon},
		{"Shpock", c.Shpock},
		{"Cache", c.Cache},
		{"API", c.API},
	}
	for _, s := range sections {
		if err := checkStruct(v, s.data, s.name); err != nil {
			return err
		}
	}

	return nil
}

// VerifyRecommendations 동작에는 문제가 없지만 운영상 주의가 필요한 설정을 경고 메시지로 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.Enabled && c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}
	if c.Ebay.ClientID == "" {
		warnings = append(warnings, "eBay 자격 증명(ebay.client_id)이 설정되지 않았습니다. eBay 링크는 모두 조회 실패로 처리됩니다")
	}
	if c.HTTP.RequestsPerSecond == 0 {
		warnings = append(warnings, "외부 요청 속도 제한(http.requests_per_second)이 비활성화되어 있습니다")
	}

	return warnings
}

// BotConfig 메신저와 무관한 미리보기 동작 설정
type BotConfig struct {
	// RequesterOnlyNavigation true이면 다음/이전 버튼도 링크를 올린 사용자만 누를 수 있습니다.
	RequesterOnlyNavigation bool `json:"requester_only_navigation"`

	// ReactionTimeout ❌ 리액션으로 미리보기를 지울 수 있는 시간 (예: 45s)
	ReactionTimeout string `json:"reaction_timeout" validate:"duration"`
}

// ReactionTimeoutDuration ReactionTimeout을 time.Duration으로 반환합니다. 검증을 통과한 값이라고 가정합니다.
func (c BotConfig) ReactionTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReactionTimeout)
	return d
}

// DiscordConfig 디스코드 봇 설정
type DiscordConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token" validate:"required_if=Enabled true"`

	// 채널별 메시지 전송 속도 제한 (초당 전송 수, 0이면 제한 없음)
	SendRatePerSecond float64 `json:"send_rate_per_second" validate:"min=0"`
	SendBurst         int     `json:"send_burst" validate:"min=0"`

	// MaxMessageCount 수정 이벤트에서 이전 본문을 비교하기 위해 보관할 메시지 수
	MaxMessageCount int `json:"max_message_count" validate:"min=0"`
}

// TelegramConfig 텔레그램 봇 설정
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`

	// AllowedChatIDs 비어 있으면 모든 그룹 채팅에서 동작합니다.
	AllowedChatIDs []int64 `json:"allowed_chat_ids"`

	// Workers 동시에 처리할 업데이트 수
	Workers int `json:"workers" validate:"min=1,max=100"`
}

// HTTPConfig 외부 페이지 및 API 요청 설정
type HTTPConfig struct {
	Timeout           string  `json:"timeout" validate:"duration"`
	RequestsPerSecond float64 `json:"requests_per_second" validate:"min=0"`
	Burst             int     `json:"burst" validate:"min=0"`
	MaxBodyBytes      int64   `json:"max_body_bytes" validate:"min=0"`
}

// TimeoutDuration Timeout을 time.Duration으로 반환합니다.
func (c HTTPConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// EbayConfig eBay Browse API 자격 증명 및 요청 설정
type EbayConfig struct {
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret" validate:"required_with=ClientID"`
	APIBaseURL    string `json:"api_base_url" validate:"required,url"`
	TokenURL      string `json:"token_url" validate:"required,url"`
	Scope         string `json:"scope" validate:"required"`
	MarketplaceID string `json:"marketplace_id" validate:"required"`
	Language      string `json:"language" validate:"required"`
}

// AmazonConfig Amazon 상품 페이지 수집 설정
type AmazonConfig struct {
	UserAgent string `json:"user_agent" validate:"required"`
}

// ShpockConfig Shpock 매물 페이지 수집 설정
type ShpockConfig struct {
	BaseURL string `json:"base_url" validate:"required,url"`
	Locale  string `json:"locale" validate:"required,locale_segment"`
}

// CacheConfig 매물 캐시 설정
type CacheConfig struct {
	// FlushSpec 캐시를 통째로 비우는 주기 (6필드 Cron 표현식 또는 @every <duration>)
	FlushSpec string `json:"flush_spec" validate:"required,cron_spec"`
}

// APIConfig 상태 확인용 HTTP API 서버 설정
type APIConfig struct {
	Enabled    bool `json:"enabled"`
	ListenPort int  `json:"listen_port" validate:"min=1,max=65535"`
}

// newDefaultConfig 설정 파일에 값이 없을 때 사용할 기본값을 반환합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Bot: BotConfig{
			RequesterOnlyNavigation: true,
			ReactionTimeout:         DefaultReactionTimeout,
		},
		Discord: DiscordConfig{
			SendRatePerSecond: 5,
			SendBurst:         5,
			MaxMessageCount:   200,
		},
		Telegram: TelegramConfig{
			Workers: 8,
		},
		HTTP: HTTPConfig{
			Timeout:           DefaultHTTPTimeout,
			RequestsPerSecond: 5,
			Burst:             5,
			MaxBodyBytes:      5 << 20,
		},
		Ebay: EbayConfig{
			APIBaseURL:    DefaultEbayAPIBaseURL,
			TokenURL:      DefaultEbayTokenURL,
			Scope:         DefaultEbayScope,
			MarketplaceID: DefaultEbayMarketplaceID,
			Language:      DefaultEbayLanguage,
		},
		Amazon: AmazonConfig{
			UserAgent: DefaultAmazonUserAgent,
		},
		Shpock: ShpockConfig{
			BaseURL: DefaultShpockBaseURL,
			Locale:  DefaultShpockLocale,
		},
		Cache: CacheConfig{
			FlushSpec: DefaultCacheFlushSpec,
		},
		API: APIConfig{
			Enabled:    false,
			ListenPort: DefaultAPIListenPort,
		},
	}
}
