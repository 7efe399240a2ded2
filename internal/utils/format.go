package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var coinPrinter = message.NewPrinter(language.English)

// FormatCoins renders a coin amount with thousands separators, e.g. 11,250
func FormatCoins(amount int64) string {
	return coinPrinter.Sprintf("%d", amount)
}
