package amortization

import (
	"loan-amortizer/domain"
)

// Periods lays out the accrual periods of a loan. The first period runs from
// settlement to the first payment date; later periods step by the payment
// frequency on the first payment date's day of month.
//
// A period is emitted only if it ends on or before maturity, and generation
// stops at maturity or after TotalPeriods periods, whichever comes first.
func Periods(terms domain.LoanTerms) ([]domain.Period, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	limit := terms.TotalPeriods()
	anchor := terms.FirstPaymentDate.Day()
	step := terms.Frequency.Months()

	periods := make([]domain.Period, 0, limit)
	start, end := terms.SettlementDate, terms.FirstPaymentDate
	for n := 1; n <= limit && !end.After(terms.MaturityDate); n++ {
		periods = append(periods, domain.Period{
			Number:      n,
			Start:       start,
			End:         end,
			PaymentDate: RollWeekend(end),
			Days:        DayCount(start, end, terms.Basis),
		})
		if !end.Before(terms.MaturityDate) {
			break
		}
		start, end = end, AddMonths(end, step, anchor)
	}
	return periods, nil
}
