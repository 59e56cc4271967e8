// internal/pricing/round.go
package pricing

import "math"

// All monetary values are whole currency units. Rounding happens inside the
// engine, never at the display layer, so charged and displayed amounts match.

// roundUnits rounds to the nearest whole currency unit.
func roundUnits(v float64) int64 {
	return int64(math.Round(v))
}

// percentOf returns round(amount * percent / 100).
func percentOf(amount, percent int64) int64 {
	return roundUnits(float64(amount) * float64(percent) / 100)
}

// floorPercentOf returns floor(amount * percent / 100).
func floorPercentOf(amount, percent int64) int64 {
	return int64(math.Floor(float64(amount) * float64(percent) / 100))
}

// ceilDays returns ceil(days * percent / 100) as a day count.
func ceilDays(days, percent int) int {
	return int(math.Ceil(float64(days) * float64(percent) / 100))
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
