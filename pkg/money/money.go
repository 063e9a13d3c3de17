// Package money holds the single rounding point of the pricing pipeline.
// Every intermediate amount stays an unrounded float64; values are rounded
// to two decimal places only here, when they are prepared for display.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount half-up to two decimal places.
func Round2(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// Format renders an amount as a plain two-decimal string, e.g. "99.98".
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
