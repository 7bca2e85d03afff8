package utils

import "github.com/shopspring/decimal"

// RoundPrice rounds a price or a percentage to two decimals, half away from zero.
func RoundPrice(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
