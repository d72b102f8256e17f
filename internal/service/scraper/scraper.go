// Package scraper 상품 페이지 HTML을 가져와 파싱하고 공통 메타데이터를 추출합니다.
package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	"golang.org/x/net/html/charset"
)

// FetchHTMLDocument url의 HTML 문서를 가져와 goquery.Document로 파싱합니다.
// Content-Type 헤더를 기준으로 비 UTF-8 페이지도 UTF-8로 변환합니다.
//
// header의 값은 요청에 그대로 설정됩니다. (예: Amazon의 고정 User-Agent)
// 상태 코드 에러는 fetcher 체인이 분류한 그대로 반환되므로 apperrors.Is(err, apperrors.NotFound)로 판별할 수 있습니다.
func FetchHTMLDocument(ctx context.Context, f fetcher.Fetcher, url string, header http.Header) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("HTML 요청 생성에 실패했습니다 (URL: %s)", url))
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}

	resp, err := f.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("페이지(%s)의 인코딩 변환에 실패했습니다", url))
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("페이지(%s)의 HTML 파싱에 실패했습니다", url))
	}

	return doc, nil
}
