package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Extract
// =============================================================================

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "스킴 없는 URL",
			text: "check out ebay.co.uk/itm/123456789012",
			want: []string{"ebay.co.uk/itm/123456789012"},
		},
		{
			name: "스킴 있는 URL과 문장 부호",
			text: "look: https://www.amazon.co.uk/dp/B000123456. cheap!",
			want: []string{"https://www.amazon.co.uk/dp/B000123456"},
		},
		{
			name: "여러 URL은 등장 순서 유지",
			text: "https://shpock.com/i/YF1cWf6-kNhGrPa4 vs ebay.com/itm/123456789012",
			want: []string{"https://shpock.com/i/YF1cWf6-kNhGrPa4", "ebay.com/itm/123456789012"},
		},
		{
			name: "괄호 안의 URL",
			text: "(ebay.de/i/123456789012)",
			want: []string{"ebay.de/i/123456789012"},
		},
		{
			name: "경로 없는 스킴 없는 토큰 무시",
			text: "node.js fan, ask Mr.Smith: ebay.com/itm/123456789012",
			want: []string{"ebay.com/itm/123456789012"},
		},
		{
			name: "스킴 있는 URL은 경로 없어도 인정",
			text: "see https://ebay.com and www.amazon.com",
			want: []string{"https://ebay.com"},
		},
		{
			name: "URL 없음",
			text: "I love ebay",
			want: []string{},
		},
		{
			name: "빈 문자열",
			text: "",
			want: []string{},
		},
		{
			name: "잘못된 입력",
			text: "http:// ::: //// \x00 ...",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestFirst(t *testing.T) {
	u, ok := First("a ebay.com/itm/111111111111 b ebay.com/itm/222222222222")
	require.True(t, ok)
	assert.Equal(t, "ebay.com/itm/111111111111", u)

	u, ok = First("node.js fan: ebay.com/itm/123456789012")
	require.True(t, ok)
	assert.Equal(t, "ebay.com/itm/123456789012", u)

	_, ok = First("nothing here")
	assert.False(t, ok)
}

func TestHasKeyword(t *testing.T) {
	assert.True(t, HasKeyword("Check EBAY"))
	assert.True(t, HasKeyword("amazon.de"))
	assert.True(t, HasKeyword("ShPock bargain"))
	assert.False(t, HasKeyword("https://example.com/itm/123456789012"))
}

func TestNormalize(t *testing.T) {
	u, err := Normalize("EBAY.co.uk/itm/1")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "ebay.co.uk", u.Host)

	u, err = Normalize("http://shpock.com/i/x")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
}

// =============================================================================
// Classify
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want Provider
	}{
		{"ebay.co.uk/itm/123456789012", Ebay},
		{"https://www.ebay.com/itm/Some-Title/123456789012?hash=abc", Ebay},
		{"https://ebay.de/i/123456789012", Ebay},
		{"http://www.ebay.com.au/itm/123456789012/", Ebay},
		{"https://ebay.co.uk/sch/i.html?_nkw=bike", None},
		{"https://notebay.com/itm/123456789012", None},

		{"amazon.co.uk/dp/B000123456", Amazon},
		{"https://www.amazon.com/Some-Product/dp/B000123456/ref=sr_1_1", Amazon},
		{"https://amazon.de/gp/product/B000123456?th=1", Amazon},
		{"https://amazon.com/dp/B00012345", None},
		{"https://amazon.com/gp/cart", None},

		{"https://www.shpock.com/en-gb/i/YF1cWf6-kNhGrPa4", Shpock},
		{"shpock.com/i/YF1cWf6-kNhGrPa4", Shpock},
		{"https://shpock.com/en-gb/q/bike", None},
		{"https://shpock.com/i/short", None},

		{"https://example.com/itm/123456789012", None},
		{"", None},
		{"::::", None},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.url))
			assert.Equal(t, tt.want, Classify(tt.url), "같은 입력은 항상 같은 결과여야 합니다")
		})
	}
}

func TestProvider_String(t *testing.T) {
	assert.Equal(t, "ebay", Ebay.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "unknown", Provider(42).String())
	assert.Equal(t, []Provider{Ebay, Amazon, Shpock}, Providers())
}
