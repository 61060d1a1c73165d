// Package mathutil converts between currency amounts and integer minor
// units and holds the float comparisons used on monetary totals.
package mathutil

import (
	"math"

	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// ToMinorUnits converts an amount into integer minor units (cents), rounding
// half away from zero. The conversion goes through the shortest decimal
// representation of val so that 0.285 yields 29 rather than the 28 produced by
// math.Round(0.285*100). NaN and infinities yield 0.
func ToMinorUnits(val float64) int64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return decimal.NewFromFloat(val).Shift(constants.MinorUnitDigits).Round(0).IntPart()
}

// FromMinorUnits converts integer minor units back into a currency amount.
func FromMinorUnits(units int64) float64 {
	return decimal.New(units, -constants.MinorUnitDigits).InexactFloat64()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
