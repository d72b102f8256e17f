// Package ebay eBay Browse API로 경매 마켓플레이스 매물을 조회하는 어댑터입니다.
package ebay

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/tidwall/gjson"
)

const component = "provider.ebay"

// itemIDLength eBay 레거시 매물 ID의 길이
const itemIDLength = 12

var itemIDPattern = regexp.MustCompile(`^[0-9]{12}$`)

// Config eBay 어댑터 설정입니다.
type Config struct {
	ClientID     string
	ClientSecret string

	APIBaseURL string
	TokenURL   string
	Scope      string

	MarketplaceID string
	Language      string
}

// Adapter eBay 매물 어댑터입니다.
type Adapter struct {
	client *browseClient
}

var _ provider.Adapter = (*Adapter)(nil)

// New eBay 어댑터를 생성합니다.
//
// f는 Browse API 요청에, tokenHTTPClient는 OAuth 토큰 발급 요청에 사용됩니다.
// tokenHTTPClient가 nil이면 http.DefaultClient를 사용합니다.
func New(cfg Config, f fetcher.Fetcher, tokenHTTPClient *http.Client) *Adapter {
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	return &Adapter{
		client: newBrowseClient(cfg, f, tokenHTTPClient),
	}
}

func (a *Adapter) Provider() link.Provider {
	return link.Ebay
}

// Parse URL 끝의 12자리 매물 ID와 최상위 도메인으로 짧은 URL을 만듭니다.
// 쿼리 스트링과 끝의 '/'만 다른 URL은 같은 결과가 됩니다.
// 12자리 ID가 없는 매물 경로는 마지막 경로 조각으로 Ref를 채우고 NotFound 에러를 반환합니다.
//
//	ebay.co.uk/itm/Some-Title/123456789012?hash=x → https://ebay.co.uk/i/123456789012
func (a *Adapter) Parse(rawURL string) (provider.Ref, error) {
	u, err := link.Normalize(rawURL)
	if err != nil {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Ebay, rawURL)
	}

	m := link.EbayHostPattern.FindStringSubmatch(u.Hostname())
	if m == nil {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Ebay, rawURL)
	}
	tld := m[1]

	s := rawURL
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")

	if len(s) >= itemIDLength {
		if id := s[len(s)-itemIDLength:]; itemIDPattern.MatchString(id) {
			return newRef(tld, id, rawURL), nil
		}
	}

	// 매물 경로이지만 12자리 ID가 없으면 조회할 수 없는 매물로 봅니다.
	seg := strings.TrimRight(u.EscapedPath(), "/")
	seg = seg[strings.LastIndex(seg, "/")+1:]
	if seg == "" || strings.EqualFold(seg, "itm") || strings.EqualFold(seg, "i") {
		return provider.Ref{}, provider.NewErrInvalidURL(link.Ebay, rawURL)
	}

	ref := newRef(tld, seg, rawURL)
	return ref, provider.NewErrItemNotFound(ref, nil)
}

func newRef(tld, id, rawURL string) provider.Ref {
	return provider.Ref{
		Provider:     link.Ebay,
		ID:           id,
		CanonicalURL: "https://ebay." + tld + "/i/" + id,
		OriginalURL:  rawURL,
	}
}

// Fetch 레거시 ID로 매물을 조회합니다.
//
// 레거시 ID 조회가 4xx 계열로 실패하면 변형 상품일 수 있으므로 아이템 그룹 조회를 한 번 더 시도하고,
// 그 첫 번째 매물의 그룹 이미지를 사용합니다. 그룹 조회까지 실패하면 NotFound입니다.
func (a *Adapter) Fetch(ctx context.Context, ref provider.Ref) (*listing.Listing, error) {
	body, err := a.client.getItemByLegacyID(ctx, ref.ID)
	if err == nil {
		return buildListing(ref, gjson.ParseBytes(body), false)
	}
	if !isLookupMiss(err) {
		return nil, err
	}

	body, err = a.client.getItemsByItemGroup(ctx, ref.ID)
	if err != nil {
		return nil, provider.NewErrItemNotFound(ref, err)
	}

	item := gjson.GetBytes(body, "items.0")
	if !item.Exists() {
		return nil, provider.NewErrItemNotFound(ref, nil)
	}

	return buildListing(ref, item, true)
}

// isLookupMiss 아이템 그룹 조회로 넘어가야 하는 실패인지 확인합니다.
// 존재하지 않는 ID(404)와 변형 상품의 레거시 ID(400)가 해당됩니다.
func isLookupMiss(err error) bool {
	return apperrors.Is(err, apperrors.NotFound) || apperrors.Is(err, apperrors.InvalidInput)
}
