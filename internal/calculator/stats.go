package calculator

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundMoney rounds a currency amount to cents using decimal arithmetic.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Concentration returns the coefficient of variation (population standard
// deviation over mean) of a set of allocations. An empty set has
// concentration 1.0; a non-empty set whose mean is zero is undefined (NaN).
func Concentration(allocations []float64) float64 {
	if len(allocations) == 0 {
		return 1.0
	}
	mean, std := stat.PopMeanStdDev(allocations, nil)
	if mean == 0 {
		return math.NaN()
	}
	return std / mean
}
