package amortization

import "github.com/shopspring/decimal"

// roundCents rounds a money amount to cents, half away from zero.
func roundCents(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
