// Package money formats amounts for display.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the unit prefix used when none is configured.
const DefaultCurrency = "SSP"

var printer = message.NewPrinter(language.English)

// Format renders an amount rounded to whole currency units with thousands
// separators, e.g. "SSP 125,000".
func Format(currency string, amount decimal.Decimal) string {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	return printer.Sprintf("%s %d", currency, amount.Round(0).IntPart())
}

// FormatExact renders an amount with two decimal places and thousands
// separators, e.g. "SSP 12,000.50".
func FormatExact(currency string, amount decimal.Decimal) string {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	r := amount.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
	}
	r = r.Abs()
	whole := r.IntPart()
	cents := r.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()
	return printer.Sprintf("%s %s%d.%s", currency, sign, whole, fmt.Sprintf("%02d", cents))
}
