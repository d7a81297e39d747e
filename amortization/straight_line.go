package amortization

import (
	"loan-amortizer/domain"
)

// straightLineRows retires the same principal every period, spreading the
// notional evenly over the periods that fit before maturity. The principal
// is rounded to cents and the last period takes the remainder. Interest is
// charged on the declining balance.
func straightLineRows(terms domain.LoanTerms, periods []domain.Period) ([]domain.ScheduleRow, error) {
	principal := roundCents(terms.Notional / float64(len(periods)))

	rows := make([]domain.ScheduleRow, 0, len(periods))
	balance := terms.Notional
	for i, p := range periods {
		part := min(principal, balance)
		if i == len(periods)-1 {
			part = balance
		}
		interest := accrue(balance, terms, p)
		rows = append(rows, newRow(p, balance, roundCents(interest+part), part))
		balance = roundCents(balance - part)
	}
	return rows, nil
}
