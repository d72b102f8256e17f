package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Metadata
	}{
		{
			name: "OpenGraph 우선",
			html: `<html><head>
				<title>Fallback title</title>
				<meta property="og:title" content="Bike in London for £50 for sale | Shpock">
				<meta name="twitter:title" content="Twitter title">
				<meta property="og:description" content="  Great   bike  ">
				<meta name="description" content="meta description">
				<meta property="og:image" content="https://img.example.com/a.jpg">
			</head></html>`,
			want: Metadata{
				Title:       "Bike in London for £50 for sale | Shpock",
				Description: "Great bike",
				Image:       "https://img.example.com/a.jpg",
			},
		},
		{
			name: "Twitter 대체",
			html: `<html><head>
				<meta name="twitter:title" content="Twitter title">
				<meta name="twitter:description" content="Twitter description">
				<meta name="twitter:image" content="/img/b.jpg">
			</head></html>`,
			want: Metadata{
				Title:       "Twitter title",
				Description: "Twitter description",
				Image:       "https://www.shpock.com/img/b.jpg",
			},
		},
		{
			name: "title 태그와 meta description",
			html: `<html><head>
				<title>
					Plain title
				</title>
				<meta name="description" content="meta description">
			</head></html>`,
			want: Metadata{
				Title:       "Plain title",
				Description: "meta description",
			},
		},
		{
			name: "og 태그를 name 속성으로 쓴 경우",
			html: `<html><head><meta name="og:title" content="Named og"></head></html>`,
			want: Metadata{Title: "Named og"},
		},
		{
			name: "메타데이터 없음",
			html: `<html><body><p>nothing</p></body></html>`,
			want: Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMetadata(newDoc(t, tt.html), "https://www.shpock.com/en-gb/i/abc")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchHTMLDocument(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(`<html><head><title>Café £5</title></head></html>`)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/utf8":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><head><title>` + r.Header.Get("User-Agent") + `</title></head></html>`))
		case "/latin1":
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte(latin1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := fetcher.New(fetcher.Options{})

	t.Run("헤더 전달", func(t *testing.T) {
		doc, err := FetchHTMLDocument(context.Background(), f, srv.URL+"/utf8", http.Header{"User-Agent": {"Firefox/88.0"}})
		require.NoError(t, err)
		assert.Equal(t, "Firefox/88.0", doc.Find("title").Text())
	})

	t.Run("인코딩 변환", func(t *testing.T) {
		doc, err := FetchHTMLDocument(context.Background(), f, srv.URL+"/latin1", nil)
		require.NoError(t, err)
		assert.Equal(t, "Café £5", doc.Find("title").Text())
	})

	t.Run("404는 NotFound", func(t *testing.T) {
		_, err := FetchHTMLDocument(context.Background(), f, srv.URL+"/missing", nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})
}
