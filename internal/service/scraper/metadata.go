package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
)

// Metadata 페이지의 대표 제목, 설명, 이미지입니다. 찾지 못한 항목은 빈 문자열입니다.
type Metadata struct {
	Title       string
	Description string
	Image       string
}

// ExtractMetadata 문서에서 메타데이터를 추출합니다.
//
// 우선순위:
//   - 제목: og:title > twitter:title > <title>
//   - 설명: og:description > twitter:description > meta[name=description]
//   - 이미지: og:image > og:image:secure_url > twitter:image > link[rel=image_src]
//
// 상대 경로 이미지는 pageURL 기준의 절대 URL로 변환합니다.
func ExtractMetadata(doc *goquery.Document, pageURL string) Metadata {
	md := Metadata{
		Title: strutil.FirstNonEmpty(
			metaContent(doc, "property", "og:title"),
			metaContent(doc, "name", "twitter:title"),
			doc.Find("title").First().Text(),
		),
		Description: strutil.FirstNonEmpty(
			metaContent(doc, "property", "og:description"),
			metaContent(doc, "name", "twitter:description"),
			metaContent(doc, "name", "description"),
		),
	}

	image := strutil.FirstNonEmpty(
		metaContent(doc, "property", "og:image"),
		metaContent(doc, "property", "og:image:secure_url"),
		metaContent(doc, "name", "twitter:image"),
		attr(doc.Find(`link[rel="image_src"]`).First(), "href"),
	)

	md.Title = strutil.NormalizeSpaces(md.Title)
	md.Description = strutil.NormalizeSpaces(md.Description)
	md.Image = resolveURL(pageURL, strings.TrimSpace(image))

	return md
}

// metaContent <meta {attrName}="{value}" content="..."> 의 content를 반환합니다.
// 일부 사이트는 og 태그에 property 대신 name을 쓰므로 두 속성을 모두 확인합니다.
func metaContent(doc *goquery.Document, attrName, value string) string {
	for _, a := range []string{attrName, alternateAttr(attrName)} {
		sel := doc.Find(`meta[` + a + `="` + value + `"]`).First()
		if c := attr(sel, "content"); c != "" {
			return c
		}
	}
	return ""
}

func alternateAttr(attrName string) string {
	if attrName == "property" {
		return "name"
	}
	return "property"
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}

	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return ref
	}

	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
