package ebay

import (
	"strings"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/tidwall/gjson"
)

const (
	typeBuyItNow = "BIN"
	typeAuction  = "Auction"
)

// buildListing Browse API의 item 객체를 Listing으로 변환합니다.
// fromGroup이면 이미지를 primaryItemGroup의 그룹 이미지로 대체합니다.
func buildListing(ref provider.Ref, item gjson.Result, fromGroup bool) (*listing.Listing, error) {
	if !item.IsObject() {
		return nil, apperrors.New(apperrors.ParsingFailed, "eBay 매물 응답에 item 객체가 없습니다")
	}

	primaryImage := item.Get("image.imageUrl").String()
	additional := imageURLs(item.Get("additionalImages"))
	if fromGroup {
		primaryImage = item.Get("primaryItemGroup.itemGroupImage.imageUrl").String()
		additional = imageURLs(item.Get("primaryItemGroup.itemGroupAdditionalImages"))
	}

	city := item.Get("itemLocation.city").String()
	postalCode := normalizePostalCode(item.Get("itemLocation.postalCode").String())
	condition := item.Get("condition").String()

	return (&listing.Listing{
		ID:               ref.ID,
		Provider:         link.Ebay,
		Title:            item.Get("title").String(),
		CanonicalURL:     ref.CanonicalURL,
		PrimaryImage:     primaryImage,
		AdditionalImages: additional,
		Description:      composeDescription(item.Get("shortDescription").String(), city, postalCode, condition),
		Price:            formatPrice(item.Get("price")),
		AuctionType:      auctionType(item.Get("buyingOptions")),
		ItemLocation:     joinLocation(city, postalCode),
		Condition:        condition,
	}).Seal(), nil
}

func imageURLs(images gjson.Result) []string {
	var urls []string
	for _, img := range images.Array() {
		if u := img.Get("imageUrl").String(); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// formatPrice 환산 전 가격(convertedFrom*)이 있으면 우선하여 "기호+금액" 형식으로 만듭니다.
func formatPrice(price gjson.Result) string {
	if code := price.Get("convertedFromCurrency").String(); code != "" {
		return currencySymbol(code) + price.Get("convertedFromValue").String()
	}
	if code := price.Get("currency").String(); code != "" {
		return currencySymbol(code) + price.Get("value").String()
	}
	return price.Get("value").String()
}

func auctionType(buyingOptions gjson.Result) string {
	for _, opt := range buyingOptions.Array() {
		if opt.String() == "FIXED_PRICE" {
			return typeBuyItNow
		}
	}
	return typeAuction
}

func normalizePostalCode(postalCode string) string {
	return strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(postalCode, "*", "")))
}

func joinLocation(city, postalCode string) string {
	switch {
	case city != "" && postalCode != "":
		return city + ", " + postalCode
	case city != "":
		return city
	default:
		return postalCode
	}
}

// composeDescription 짧은 설명, 위치, 상태를 순서대로 이어 붙입니다.
//
//	"Lovely bike\n\nLocated in London, SE1 - Condition: Used"
//	"Located in London - Condition: Used"
//	"Condition: New"
func composeDescription(shortDescription, city, postalCode, condition string) string {
	var sb strings.Builder

	if shortDescription != "" {
		sb.WriteString(shortDescription)
		sb.WriteString("\n\n")
	}

	location := joinLocation(city, postalCode)
	if location != "" {
		sb.WriteString("Located in ")
		sb.WriteString(location)
	}

	if condition != "" {
		if location != "" {
			sb.WriteString(" - ")
		}
		sb.WriteString("Condition: ")
		sb.WriteString(condition)
	}

	return strings.TrimRight(sb.String(), "\n ")
}
