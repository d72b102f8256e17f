package ebay

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// currencySymbols 자주 쓰이는 통화의 표시 기호입니다.
var currencySymbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
	"USD": "$",
	"AUD": "$",
	"CAD": "$",
	"NZD": "$",
	"HKD": "$",
	"SGD": "$",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"CHF": "CHF",
	"PLN": "zł",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"CZK": "Kč",
	"HUF": "Ft",
	"ILS": "₪",
	"TRY": "₺",
	"RUB": "₽",
	"PHP": "₱",
	"MYR": "RM",
	"BRL": "R$",
	"MXN": "$",
}

// currencySymbol 통화 코드의 기호를 반환합니다.
// 표에 없으면 ISO 4217 통화 데이터의 기호를, 그것도 없으면 코드를 그대로 반환합니다.
func currencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	if sym := fmt.Sprint(currency.Symbol(unit)); sym != "" {
		return sym
	}
	return code
}
