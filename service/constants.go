package service

import "time"

const (
	MaxNotional          = 1_000_000_000.0 // 1 billion
	MaxRatePercent       = 1000.0          // 1000% per year
	MaxSpreadPercent     = 100.0
	MaxAmortizationYears = 50
	DefaultCacheTTL      = 10 * time.Minute
	// DefaultSampleMonths is the horizon of curve samples when none is given.
	DefaultSampleMonths = 120
	MaxCurveSamples     = 1000
)

// Limits bounds the loan terms a caller may request.
type Limits struct {
	MaxNotional          float64
	MaxRatePercent       float64
	MaxAmortizationYears int
}

func DefaultLimits() Limits {
	return Limits{
		MaxNotional:          MaxNotional,
		MaxRatePercent:       MaxRatePercent,
		MaxAmortizationYears: MaxAmortizationYears,
	}
}
