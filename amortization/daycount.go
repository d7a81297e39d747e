// Package amortization generates loan amortization schedules: period layout,
// day-count accrual, level payment solving, the three allocation strategies
// and the floating-rate overlay.
package amortization

import (
	"time"

	"loan-amortizer/domain"
)

// yearDays is the year length DayCount results are expressed against.
const yearDays = 360

// thirtyDayPeriod is the accrual length of every period under the 30
// numerator.
const thirtyDayPeriod = 30

// DayCount returns the accrual days between start and end under basis,
// expressed in 360-day-year days.
//
// The ACT numerator counts calendar days. The 30 numerator is a fixed 30
// days per period whatever the calendar span, stubs and quarters included.
// A 365 denominator rescales the count by 360/365. end must not be before
// start.
func DayCount(start, end time.Time, basis domain.DayCountBasis) float64 {
	days := float64(thirtyDayPeriod)
	if basis.Numerator == domain.Actual {
		days = actualDays(start, end)
	}
	if basis.Denominator == 365 {
		return days * yearDays / 365
	}
	return days
}

func actualDays(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// accrue is simple interest on balance for one period.
func accrue(balance float64, terms domain.LoanTerms, p domain.Period) float64 {
	return balance * terms.Rate * p.Days / yearDays
}
