package ebay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	pathGetItemByLegacyID   = "/buy/browse/v1/item/get_item_by_legacy_id"
	pathGetItemsByItemGroup = "/buy/browse/v1/item/get_items_by_item_group"

	headerMarketplaceID = "X-EBAY-C-MARKETPLACE-ID"
)

// browseClient 애플리케이션 토큰으로 인증하는 Browse API 클라이언트입니다.
type browseClient struct {
	fetcher fetcher.Fetcher
	tokens  oauth2.TokenSource

	baseURL       string
	marketplaceID string
	language      string
}

func newBrowseClient(cfg Config, f fetcher.Fetcher, tokenHTTPClient *http.Client) *browseClient {
	if tokenHTTPClient == nil {
		tokenHTTPClient = http.DefaultClient
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	if cfg.Scope != "" {
		cc.Scopes = []string{cfg.Scope}
	}

	// 토큰 소스는 프로세스 수명 동안 재사용되므로 요청 컨텍스트가 아닌 별도 컨텍스트에 묶습니다.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, tokenHTTPClient)

	applog.WithComponentAndFields(component, applog.Fields{
		"client_id":      strutil.Mask(cfg.ClientID),
		"marketplace_id": cfg.MarketplaceID,
		"token_url":      cfg.TokenURL,
	}).Debug("eBay Browse API 클라이언트를 생성했습니다")

	return &browseClient{
		fetcher: f,
		tokens:  cc.TokenSource(tokenCtx),

		baseURL:       strings.TrimRight(cfg.APIBaseURL, "/"),
		marketplaceID: cfg.MarketplaceID,
		language:      cfg.Language,
	}
}

func (c *browseClient) getItemByLegacyID(ctx context.Context, legacyID string) ([]byte, error) {
	return c.get(ctx, pathGetItemByLegacyID, url.Values{"legacy_item_id": {legacyID}})
}

func (c *browseClient) getItemsByItemGroup(ctx context.Context, groupID string) ([]byte, error) {
	return c.get(ctx, pathGetItemsByItemGroup, url.Values{"item_group_id": {groupID}})
}

func (c *browseClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "eBay 애플리케이션 토큰 발급에 실패했습니다")
	}

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "eBay 요청 생성에 실패했습니다")
	}

	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if c.marketplaceID != "" {
		req.Header.Set(headerMarketplaceID, c.marketplaceID)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
		req.Header.Set("Content-Language", c.language)
	}

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("eBay 응답 본문을 읽지 못했습니다 (path=%s)", path))
	}
	if !gjson.ValidBytes(body) {
		return nil, apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("eBay 응답이 올바른 JSON이 아닙니다 (path=%s)", path))
	}

	return body, nil
}
