// Package curve turns a forward curve snapshot into a continuous rate
// function of months since the curve start.
package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"loan-amortizer/domain"
)

// averageMonthDays converts elapsed days to fractional months.
const averageMonthDays = 30.44

// RateFunction is a piecewise-linear fit through curve points, extended
// past both ends along the nearest segment. It is immutable once built and
// safe for concurrent use.
type RateFunction struct {
	origin time.Time
	months []float64
	rates  []float64
}

// Build fits a RateFunction through points, which must be in strictly
// increasing date order and number at least two.
func Build(points []domain.CurvePoint) (*RateFunction, error) {
	if len(points) < 2 {
		return nil, &domain.CurveDataError{Reason: fmt.Sprintf("need at least 2 points, got %d", len(points))}
	}

	f := &RateFunction{
		origin: points[0].Date,
		months: make([]float64, len(points)),
		rates:  make([]float64, len(points)),
	}
	for i, p := range points {
		if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
			return nil, &domain.CurveDataError{Reason: fmt.Sprintf("point %d has a non-finite rate", i)}
		}
		if i > 0 && !p.Date.After(points[i-1].Date) {
			return nil, &domain.CurveDataError{Reason: fmt.Sprintf(
				"point %d (%s) is not after point %d (%s)",
				i, p.Date.Format("2006-01-02"), i-1, points[i-1].Date.Format("2006-01-02"))}
		}
		f.months[i] = MonthsBetween(f.origin, p.Date)
		f.rates[i] = p.Rate
	}
	return f, nil
}

// MonthsBetween is the elapsed time from..to in average-length months.
func MonthsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / averageMonthDays
}

// At evaluates the curve months after its first point. Knots return their
// rate exactly.
func (f *RateFunction) At(months float64) float64 {
	i := sort.SearchFloat64s(f.months, months)
	if i < len(f.months) && f.months[i] == months {
		return f.rates[i]
	}

	lo := i - 1
	switch {
	case i == 0:
		lo = 0
	case i >= len(f.months):
		lo = len(f.months) - 2
	}
	x1, x2 := f.months[lo], f.months[lo+1]
	r1, r2 := f.rates[lo], f.rates[lo+1]
	return r1 + (r2-r1)*(months-x1)/(x2-x1)
}

// AtDate evaluates the curve at a calendar date.
func (f *RateFunction) AtDate(t time.Time) float64 {
	return f.At(MonthsBetween(f.origin, t))
}

// Origin is the date of the first curve point.
func (f *RateFunction) Origin() time.Time {
	return f.origin
}

// Span is the month offset of the last curve point.
func (f *RateFunction) Span() float64 {
	return f.months[len(f.months)-1]
}

type Sample struct {
	Months float64 `json:"months"`
	Rate   float64 `json:"rate"`
}

// Samples evaluates n evenly spaced points on [from, to].
func (f *RateFunction) Samples(from, to float64, n int) []Sample {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Sample{{Months: from, Rate: f.At(from)}}
	}
	out := make([]Sample, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		m := from + step*float64(i)
		out[i] = Sample{Months: m, Rate: f.At(m)}
	}
	return out
}
