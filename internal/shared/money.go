package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.Spanish)

// FormatMoney renders an amount with the Latin thousands/decimal
// separators the product has always shown, e.g. 12345.6 -> "12.345,60".
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}
