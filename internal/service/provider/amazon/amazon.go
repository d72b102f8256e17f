// Package amazon 상품 페이지 HTML에서 Amazon 매물 정보를 추출하는 어댑터입니다.
package amazon

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/darkkaiser/listing-bot/internal/service/scraper"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
)

const component = "provider.amazon"

// 상품 페이지의 CSS 선택자
const (
	selectorDealPrice    = "#priceblock_dealprice"
	selectorOurPrice     = "#priceblock_ourprice"
	selectorOffscreen    = "span.a-price span.a-offscreen"
	selectorTitle        = "span#productTitle"
	selectorFirstBullet  = "div#feature-bullets > ul > li:not(.aok-hidden) > span.a-list-item"
	selectorLandingImage = "img#landingImage"
)

// Config Amazon 어댑터 설정입니다.
type Config struct {
	// UserAgent 상품 페이지 요청에 고정으로 사용할 브라우저 User-Agent
	UserAgent string
}

// Adapter Amazon 매물 어댑터입니다.
type Adapter struct {
	config  Config
	fetcher fetcher.Fetcher

	// pageURL 조회할 페이지 주소 (기본값은 짧은 URL)
	pageURL func(ref provider.Ref) string
}

var _ provider.Adapter = (*Adapter)(nil)

// New Amazon 어댑터를 생성합니다.
func New(cfg Config, f fetcher.Fetcher) *Adapter {
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	return &Adapter{
		config:  cfg,
		fetcher: f,
		pageURL: func(ref provider.Ref) string { return ref.CanonicalURL },
	}
}

func (a *Adapter) Provider() link.Provider {
	return link.Amazon
}

// Parse /dp/ 또는 /product/ 뒤의 10자리 상품 ID로 짧은 URL을 만듭니다.
//
//	https://www.amazon.co.uk/Some-Product/dp/B000123456/ref=x → https://www.amazon.co.uk/dp/B000123456
func (a *Adapter) Parse(rawURL string) (provider.Ref, error) {
	u, err := link.Normalize(rawURL)
	if err != nil {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Amazon, rawURL)
	}

	host := u.Hostname()
	if !link.AmazonHostPattern.MatchString(host) {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Amazon, rawURL)
	}

	m := link.AmazonPathPattern.FindStringSubmatch(u.EscapedPath())
	if m == nil {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Amazon, rawURL)
	}
	id := m[1]

	return provider.Ref{
		Provider:     link.Amazon,
		ID:           id,
		CanonicalURL: "https://" + host + "/dp/" + id,
		OriginalURL:  rawURL,
	}, nil
}

// Fetch 상품 페이지를 가져와 가격, 제목, 첫 번째 특징, 대표 이미지를 추출합니다.
// 모든 항목은 선택 사항이며, 페이지를 가져오지 못하면 NotFound입니다.
func (a *Adapter) Fetch(ctx context.Context, ref provider.Ref) (*listing.Listing, error) {
	header := http.Header{}
	if a.config.UserAgent != "" {
		header.Set("User-Agent", a.config.UserAgent)
	}

	doc, err := scraper.FetchHTMLDocument(ctx, a.fetcher, a.pageURL(ref), header)
	if err != nil {
		if apperrors.Is(err, apperrors.ParsingFailed) {
			return nil, err
		}
		return nil, provider.NewErrItemNotFound(ref, err)
	}

	l := extract(doc)
	if l.Title == "" && l.PrimaryImage == "" {
		applog.WithComponentAndFields(component, applog.Fields{
			"item_id": ref.ID,
		}).Warn("상품 페이지에서 제목과 이미지를 모두 찾지 못했습니다")

		return nil, apperrors.New(apperrors.ParsingFailed, "상품 페이지에서 상품 정보를 찾을 수 없습니다 (자동 요청 차단 페이지일 수 있습니다)")
	}

	l.ID = ref.ID
	l.Provider = link.Amazon
	l.CanonicalURL = ref.CanonicalURL

	return l.Seal(), nil
}

func extract(doc *goquery.Document) *listing.Listing {
	return &listing.Listing{
		Title: text(doc.Find(selectorTitle)),
		Price: strutil.FirstNonEmpty(
			text(doc.Find(selectorDealPrice)),
			text(doc.Find(selectorOurPrice)),
			text(doc.Find(selectorOffscreen)),
		),
		Description:  text(doc.Find(selectorFirstBullet)),
		PrimaryImage: landingImage(doc.Find(selectorLandingImage).First()),
	}
}

func text(sel *goquery.Selection) string {
	return strutil.NormalizeSpaces(strings.ReplaceAll(sel.First().Text(), "\n", " "))
}

func landingImage(sel *goquery.Selection) string {
	for _, name := range []string{"src", "data-old-hires"} {
		if v, ok := sel.Attr(name); ok && strings.HasPrefix(strings.TrimSpace(v), "http") {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
