// Package currency maps currency codes to display symbols and formats
// amounts for reports. Symbol mapping is the one display concern the core
// keeps; locale-aware rendering stays with the presentation layer.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCode is used when a calculation carries no currency tag.
const DefaultCode = "USD"

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF ",
	"BRL": "R$",
	"KRW": "₩",
}

// Symbol returns the display symbol for a currency code, falling back to
// "CODE " for codes outside the map so output stays unambiguous.
func Symbol(code string) string {
	if s, ok := symbols[strings.ToUpper(code)]; ok {
		return s
	}
	if code == "" {
		return symbols[DefaultCode]
	}
	return strings.ToUpper(code) + " "
}

// Format renders an amount with its symbol and two fixed decimals, using
// decimal arithmetic so .005 cases round the same way everywhere.
// Negative amounts render as -$123.45.
func Format(amount float64, code string) string {
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + Symbol(code) + d.StringFixed(2)
}

// FormatCompact renders large magnitudes as 1.2K / 3.4M / 5.6B for chart
// axes and summary lines.
func FormatCompact(amount float64, code string) string {
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	sym := Symbol(code)

	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%s%s%.1fB", sign, sym, abs/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s%s%.1fM", sign, sym, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s%s%.1fK", sign, sym, abs/1e3)
	default:
		return sign + sym + decimal.NewFromFloat(abs).StringFixed(2)
	}
}
