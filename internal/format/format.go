// Package format renders amounts for display.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount renders a monetary amount with grouping separators and without
// fraction digits, the way the mobile app displays money.
func Amount(amount decimal.Decimal) string {
	return printer.Sprintf("%d", amount.Round(0).IntPart())
}
