package utils

import "math"

// ToCents converts a decimal currency amount to integer cents, rounding
// half-up to two decimal places. All persisted amounts are stored in cents so
// totals never drift between settlement and later display.
func ToCents(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// FromCents converts integer cents back to a decimal currency amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
