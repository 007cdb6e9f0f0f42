package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol returns the display symbol for an ISO currency code
func CurrencySymbol(code string) string {
	switch strings.ToUpper(code) {
	case "EUR":
		return "€"
	case "USD", "COP", "MXN", "ARS":
		return "$"
	case "GBP":
		return "£"
	case "":
		return ""
	default:
		return strings.ToUpper(code) + " "
	}
}

// FormatMoney formats amount with two decimals as a string like "€12.500,50".
// Uses dot as thousands separator and comma for decimals.
func FormatMoney(amount float64, currency string) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + symbol + decimals
	b.Grow(len(intPart) + len(intPart)/3 + 8)
	if neg {
		b.WriteString("-")
	}
	b.WriteString(CurrencySymbol(currency))

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(frac)

	return b.String()
}
