// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/household-budget/pkg/constants"
)

// RoundCurrency rounds a value to the nearest whole currency unit. Halves
// round toward positive infinity, so -2.5 becomes -2 rather than -3.
func RoundCurrency(val float64) float64 {
	return math.Floor(val + 0.5)
}

// PercentToDecimal converts a percentage such as 4.6 into 0.046.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(annualPercent float64) float64 {
	return PercentToDecimal(annualPercent) / constants.MonthsPerYear
}

// GrowthFactor returns the compound multiplier (1 + rate)^years for an
// annual growth rate given in percent.
func GrowthFactor(annualPercent float64, years int) float64 {
	return math.Pow(1+PercentToDecimal(annualPercent), float64(years))
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
