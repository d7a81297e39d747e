package amortization

import (
	"fmt"
	"math"

	"loan-amortizer/domain"
)

// RateFunc maps a period index, read as months since the curve start, to an
// annual reference rate.
type RateFunc func(months float64) float64

// ApplyFloating reprices a schedule off a reference curve plus spread and
// returns a new slice; rows is not modified.
//
// The principal path is kept. For every row after the first, interest is a
// twelfth of (curve rate at the row index + spread) on the balance carried
// from the previous row. The first row keeps its fixed-rate cash flows since
// no reference rate is defined before period one.
func ApplyFloating(rows []domain.ScheduleRow, rateAt RateFunc, spread float64) ([]domain.ScheduleRow, error) {
	out := make([]domain.ScheduleRow, len(rows))
	copy(out, rows)
	if len(out) == 0 {
		return out, nil
	}

	out[0].EffectiveRate = effectiveRate(out[0])
	for i := 1; i < len(out); i++ {
		rate := rateAt(float64(i)) + spread
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, &domain.CurveDataError{Reason: fmt.Sprintf("rate at period %d is not finite", i)}
		}

		row := out[i]
		row.OpeningBalance = out[i-1].ClosingBalance
		row.Interest = roundCents(row.OpeningBalance * rate / 12)
		row.Payment = roundCents(row.Interest + row.Principal)
		row.ClosingBalance = roundCents(row.OpeningBalance - row.Principal)
		row.EffectiveRate = effectiveRate(row)
		out[i] = row
	}
	return out, nil
}

// effectiveRate annualizes a row's interest against its opening balance, in
// percent.
func effectiveRate(r domain.ScheduleRow) *float64 {
	pct := 0.0
	if r.OpeningBalance != 0 {
		pct = roundTo(r.Interest/r.OpeningBalance*12*100, 2)
	}
	return &pct
}
