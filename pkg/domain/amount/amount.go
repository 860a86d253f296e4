// Package amount renders per-minute quantities either as fixed-precision
// decimals or as rational approximations.
package amount

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Format selects how amounts are rendered.
type Format int

const (
	// FormatDecimal renders amounts rounded to three decimal places.
	FormatDecimal Format = iota
	// FormatRatio renders amounts as rational approximations p/q.
	FormatRatio
)

// Format renders v in the selected format.
func (f Format) Format(v float64) string {
	switch f {
	case FormatRatio:
		num, den := RatioApproximate(v)
		if den == 1 {
			return strconv.Itoa(num)
		}
		return strconv.Itoa(num) + "/" + strconv.Itoa(den)
	default:
		return decimal.NewFromFloat(v).StringFixed(3)
	}
}
