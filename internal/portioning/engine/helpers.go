package engine

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

func zeroDecimal() decimal.Decimal { return decimal.Zero }

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// round1 matches Python's round(x, 1) for the non-negative, non-banker
// magnitudes this engine ever rounds.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// round2 matches Python's round(x, 2). Money fields do not use it; they
// are rounded with decimal.Decimal.Round(2).
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func roundToInt(x float64) int {
	return int(math.Round(x))
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}

func joinOrDefault(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}
