package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/listing-bot/internal/config"
	"github.com/darkkaiser/listing-bot/internal/pkg/version"
	"github.com/darkkaiser/listing-bot/internal/service"
	"github.com/darkkaiser/listing-bot/internal/service/api"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/bot/discord"
	"github.com/darkkaiser/listing-bot/internal/service/bot/telegram"
	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/darkkaiser/listing-bot/internal/service/provider/amazon"
	"github.com/darkkaiser/listing-bot/internal/service/provider/ebay"
	"github.com/darkkaiser/listing-bot/internal/service/provider/shpock"
	"github.com/darkkaiser/listing-bot/internal/service/scheduler"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

// @title Listing Bot API
// @version 1.0
// @description 매물 미리보기 봇의 상태 확인용 API입니다.
// @description
// @description 공급자 등록 상태, 빌드 정보, 메모리 캐시 현황을 조회할 수 있습니다.
// @BasePath /

const banner = `
  _      _       _    _                 ____        _
 | |    (_) ___ | |_ (_) _ __    __ _  | __ )  ___ | |_
 | |    | |/ __|| __|| || '_ \  / _' | |  _ \ / _ \| __|
 | |___ | |\__ \| |_ | || | | || (_| | | |_) | (_) | |_
 |_____||_||___/ \__||_||_| |_| \__, | |____/ \___/ \__|
                                |___/                %s
--------------------------------------------------------------------------------
`

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.Version,
		"commit":  buildInfo.Commit,
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(w)
	}

	// 3. 매물 조회 구성
	registry, sessions := newListingStack(appConfig)

	controller := preview.NewController(registry.Cache(), sessions, appConfig.Bot.RequesterOnlyNavigation)
	handler := bot.NewHandler(registry, controller, appConfig.Bot.ReactionTimeoutDuration())

	// 4. 서비스 생성
	var services []service.Service
	if appConfig.Discord.Enabled {
		services = append(services, discord.NewService(appConfig.Discord, handler))
	}
	if appConfig.Telegram.Enabled {
		services = append(services, telegram.NewService(appConfig.Telegram, appConfig.Debug, handler))
	}
	services = append(services, scheduler.NewService(appConfig.Cache.FlushSpec,
		scheduler.Target{Name: "listings", Flusher: registry.Cache()},
		scheduler.Target{Name: "sessions", Flusher: sessions},
	))
	if appConfig.API.Enabled {
		services = append(services, api.NewService(appConfig.API, appConfig.Debug, registry, sessions, buildInfo))
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 5. 서비스 시작
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			applog.StandardLogger().Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호를 수신했습니다")
	cancel()
	serviceStopWG.Wait()
}

// newListingStack 공급자 어댑터를 등록한 Registry와 미리보기 세션 저장소를 생성합니다.
// eBay는 자격 증명이 설정된 경우에만 등록합니다.
func newListingStack(appConfig *config.AppConfig) (*provider.Registry, *preview.SessionStore) {
	timeout := appConfig.HTTP.TimeoutDuration()

	f := fetcher.New(fetcher.Options{
		Timeout:           timeout,
		RequestsPerSecond: appConfig.HTTP.RequestsPerSecond,
		Burst:             appConfig.HTTP.Burst,
		MaxBodyBytes:      appConfig.HTTP.MaxBodyBytes,
	})

	registry := provider.NewRegistry(listing.NewCache())

	if appConfig.Ebay.ClientID != "" {
		registry.MustRegister(ebay.New(ebay.Config{
			ClientID:      appConfig.Ebay.ClientID,
			ClientSecret:  appConfig.Ebay.ClientSecret,
			APIBaseURL:    appConfig.Ebay.APIBaseURL,
			TokenURL:      appConfig.Ebay.TokenURL,
			Scope:         appConfig.Ebay.Scope,
			MarketplaceID: appConfig.Ebay.MarketplaceID,
			Language:      appConfig.Ebay.Language,
		}, f, &http.Client{Timeout: timeout}))
	}

	registry.MustRegister(amazon.New(amazon.Config{
		UserAgent: appConfig.Amazon.UserAgent,
	}, f))

	registry.MustRegister(shpock.New(shpock.Config{
		BaseURL: appConfig.Shpock.BaseURL,
		Locale:  appConfig.Shpock.Locale,
	}, f))

	return registry, preview.NewSessionStore()
}
