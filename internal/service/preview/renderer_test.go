package preview

import (
	"testing"

	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEbayListing(images int) *listing.Listing {
	l := &listing.Listing{
		ID:           "123456789012",
		Provider:     link.Ebay,
		Title:        "Road bike",
		CanonicalURL: "https://ebay.co.uk/i/123456789012",
		Description:  "Located in London - Condition: Used",
		Price:        "£100.00",
		AuctionType:  "BIN",
	}
	for i := 0; i < images; i++ {
		img := "https://i.ebayimg.com/" + string(rune('a'+i)) + ".jpg"
		if i == 0 {
			l.PrimaryImage = img
		} else {
			l.AdditionalImages = append(l.AdditionalImages, img)
		}
	}
	return l.Seal()
}

func TestRender(t *testing.T) {
	l := newEbayListing(3)

	p := Render(l, 1, "alice#0001", RenderOptions{Interactive: true, BotIconURL: "https://cdn/icon.png"})

	assert.Equal(t, ColorEbay, p.Color)
	assert.Equal(t, "Road bike", p.AuthorName)
	assert.Equal(t, "https://ebay.co.uk/i/123456789012", p.AuthorURL)
	assert.Equal(t, "https://cdn/icon.png", p.AuthorIconURL)
	assert.Equal(t, "Located in London - Condition: Used", p.Description)
	assert.Equal(t, "https://i.ebayimg.com/b.jpg", p.ImageURL)
	assert.Equal(t, "£100.00 BIN - Requested by alice#0001", p.Footer)

	require.Len(t, p.Controls, 3)
	assert.Equal(t, "next", p.Controls[0].CustomID())
	assert.Equal(t, "➡️", p.Controls[0].Emoji)
	assert.Equal(t, "previous", p.Controls[1].CustomID())
	assert.Equal(t, "⬅️", p.Controls[1].Emoji)
	assert.Equal(t, "delete", p.Controls[2].CustomID())
	assert.Equal(t, StyleDanger, p.Controls[2].Style)
	assert.False(t, p.Controls[0].Disabled)
	assert.False(t, p.Controls[1].Disabled)
}

func TestRender_Controls(t *testing.T) {
	tests := []struct {
		name             string
		images           int
		index            int
		wantActions      []Action
		wantNextDisabled bool
		wantPrevDisabled bool
	}{
		{"이미지 한 장", 1, 0, []Action{ActionDelete}, false, false},
		{"첫 번째 이미지", 3, 0, []Action{ActionNext, ActionPrevious, ActionDelete}, false, true},
		{"마지막 이미지", 3, 2, []Action{ActionNext, ActionPrevious, ActionDelete}, true, false},
		{"범위를 벗어난 위치는 보정", 2, 9, []Action{ActionNext, ActionPrevious, ActionDelete}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Render(newEbayListing(tt.images), tt.index, "bob", RenderOptions{Interactive: true})

			var actions []Action
			for _, c := range p.Controls {
				actions = append(actions, c.Action)
			}
			assert.Equal(t, tt.wantActions, actions)

			if next, ok := p.Control(ActionNext); ok {
				assert.Equal(t, tt.wantNextDisabled, next.Disabled)
			}
			if prev, ok := p.Control(ActionPrevious); ok {
				assert.Equal(t, tt.wantPrevDisabled, prev.Disabled)
			}
		})
	}

	t.Run("비대화형", func(t *testing.T) {
		p := Render(newEbayListing(3), 0, "bob", RenderOptions{})
		assert.False(t, p.HasControls())
	})

	t.Run("이미지 없음", func(t *testing.T) {
		p := Render(newEbayListing(0), 0, "bob", RenderOptions{Interactive: true})
		assert.Empty(t, p.ImageURL)
		assert.Len(t, p.Controls, 1)
	})
}

func TestFooter(t *testing.T) {
	tests := []struct {
		price, auctionType, tag string
		want                    string
	}{
		{"£100.00", "BIN", "alice#0001", "£100.00 BIN - Requested by alice#0001"},
		{"£19.99", "", "alice#0001", "£19.99 - Requested by alice#0001"},
		{"", "Auction", "alice#0001", "Auction - Requested by alice#0001"},
		{"", "", "alice#0001", "Requested by alice#0001"},
		{"£5", "BIN", "", "£5 BIN"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Footer(tt.price, tt.auctionType, tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tag, RequesterFromFooter(got))
		})
	}
}

func TestRenderError(t *testing.T) {
	p := RenderError()
	assert.Equal(t, ColorError, p.Color)
	assert.Equal(t, ":x: Error!", p.Title)
	assert.Equal(t, "An unexpected error has occurred", p.Description)
	assert.Equal(t, "Sorry about that", p.Footer)
	assert.False(t, p.HasControls())
}

func TestColor(t *testing.T) {
	assert.Equal(t, 0xde3036, Color(link.Ebay))
	assert.Equal(t, 0xf79400, Color(link.Amazon))
	assert.Equal(t, 0x3cce69, Color(link.Shpock))
	assert.Equal(t, ColorError, Color(link.None))
}

func TestParseAction(t *testing.T) {
	for _, in := range []string{"next", "Next", " NEXT "} {
		a, ok := ParseAction(in)
		require.True(t, ok, in)
		assert.Equal(t, ActionNext, a)
	}

	a, ok := ParseAction("Delete")
	require.True(t, ok)
	assert.Equal(t, ActionDelete, a)

	_, ok = ParseAction("share")
	assert.False(t, ok)
	_, ok = ParseAction("")
	assert.False(t, ok)
}
