// Package shpock 중고 거래 매물 페이지의 메타데이터로 Shpock 매물 정보를 만드는 어댑터입니다.
package shpock

import (
	"context"
	"strings"

	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/darkkaiser/listing-bot/internal/service/scraper"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

const component = "provider.shpock"

const defaultLocale = "en-gb"

// Config Shpock 어댑터 설정입니다.
type Config struct {
	// BaseURL 매물 페이지를 가져올 주소 (예: https://www.shpock.com)
	BaseURL string

	// Locale 매물 페이지의 언어 경로 (예: en-gb)
	Locale string
}

// Adapter Shpock 매물 어댑터입니다.
type Adapter struct {
	baseURL string
	locale  string
	fetcher fetcher.Fetcher
}

var _ provider.Adapter = (*Adapter)(nil)

// New Shpock 어댑터를 생성합니다.
func New(cfg Config, f fetcher.Fetcher) *Adapter {
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	locale := strings.ToLower(cfg.Locale)
	if locale == "" {
		locale = defaultLocale
	}

	return &Adapter{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		locale:  locale,
		fetcher: f,
	}
}

func (a *Adapter) Provider() link.Provider {
	return link.Shpock
}

// Parse /i/ 뒤의 16자리 매물 ID로 짧은 URL을 만듭니다.
//
//	https://www.shpock.com/en-gb/i/YF1cWf6-kNhGrPa4 → https://shpock.com/i/YF1cWf6-kNhGrPa4
func (a *Adapter) Parse(rawURL string) (provider.Ref, error) {
	if link.Classify(rawURL) != link.Shpock {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Shpock, rawURL)
	}

	u, err := link.Normalize(rawURL)
	if err != nil {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Shpock, rawURL)
	}

	m := link.ShpockPathPattern.FindStringSubmatch(u.EscapedPath())
	if m == nil {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Shpock, rawURL)
	}
	id := m[1]

	return provider.Ref{
		Provider:     link.Shpock,
		ID:           id,
		CanonicalURL: "https://shpock.com/i/" + id,
		OriginalURL:  rawURL,
	}, nil
}

// Fetch 언어 경로가 붙은 매물 페이지를 가져와 메타데이터의 제목에서 제목, 위치, 가격을 분리합니다.
func (a *Adapter) Fetch(ctx context.Context, ref provider.Ref) (*listing.Listing, error) {
	pageURL := a.baseURL + "/" + a.locale + "/i/" + ref.ID

	doc, err := scraper.FetchHTMLDocument(ctx, a.fetcher, pageURL, nil)
	if err != nil {
		return nil, err
	}

	md := scraper.ExtractMetadata(doc, pageURL)
	if md.Title == "" {
		return nil, provider.NewErrItemNotFound(ref, nil)
	}

	parsed := parseTitle(md.Title)

	applog.WithComponentAndFields(component, applog.Fields{
		"item_id":  ref.ID,
		"title":    parsed.Title,
		"location": parsed.Location,
		"price":    parsed.Price,
	}).Debug("매물 제목을 분리했습니다")

	return (&listing.Listing{
		ID:           ref.ID,
		Provider:     link.Shpock,
		Title:        parsed.Title,
		CanonicalURL: ref.CanonicalURL,
		PrimaryImage: md.Image,
		Description:  composeDescription(md.Description, parsed.Location),
		Price:        parsed.Price,
		ItemLocation: parsed.Location,
	}).Seal(), nil
}

func composeDescription(description, location string) string {
	var parts []string
	if description != "" {
		parts = append(parts, description+"...")
	}
	if location != "" {
		parts = append(parts, "Located in "+location)
	}
	return strings.Join(parts, "\n\n")
}
