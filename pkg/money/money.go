// Package money formats coin amounts for human-readable messages.
package money

import "github.com/shopspring/decimal"

const Symbol = "₱"

// Format renders amount with two decimals, e.g. ₱93.75. Amounts are stored
// unrounded; only messages go through here.
func Format(amount float64) string {
	return Symbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// Round2 rounds half away from zero to cents.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
