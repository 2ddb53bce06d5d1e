package util

import "math"

// Round2 rounds a monetary amount to two decimal places. Aggregation keeps
// un-rounded values internally; rounding happens only at persistence and
// response boundaries to avoid compounding error across repeated sums.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
