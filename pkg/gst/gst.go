// Package gst provides pure helpers for converting between tax-inclusive
// and base amounts under the flat 18% GST rate.
package gst

import "math"

// Rate is the flat GST rate applied to every transaction.
const Rate = 0.18

// ToGross converts a base (tax-exclusive) amount to its tax-inclusive value.
func ToGross(base float64) float64 {
	return base * (1 + Rate)
}

// ToBase converts a tax-inclusive amount back to its base value.
func ToBase(gross float64) float64 {
	return gross / (1 + Rate)
}

// Split breaks a tax-inclusive amount into its base and GST portions.
// The two parts always sum back to gross.
func Split(gross float64) (base, tax float64) {
	base = ToBase(gross)
	return base, gross - base
}

// AmountOrZero clamps non-finite or negative values to zero. Aggregation
// over historical rows must never fail on a malformed amount, so every sum
// goes through this guard instead of re-checking at each call site.
func AmountOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
