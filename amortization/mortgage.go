package amortization

import (
	"loan-amortizer/domain"
)

// mortgageRows pays a level amount every period. Interest accrues on the
// outstanding balance and the rest of the payment retires principal. The
// period that completes the amortization term pays off whatever balance is
// left, absorbing cent rounding.
func mortgageRows(terms domain.LoanTerms, periods []domain.Period) ([]domain.ScheduleRow, error) {
	payment, err := LevelPayment(terms)
	if err != nil {
		return nil, err
	}

	final := terms.TotalPeriods()
	rows := make([]domain.ScheduleRow, 0, len(periods))
	balance := terms.Notional
	for _, p := range periods {
		interest := accrue(balance, terms, p)
		principal := roundCents(payment - interest)
		amount := payment
		if p.Number == final || principal > balance {
			principal = balance
			amount = roundCents(principal + interest)
		}
		rows = append(rows, newRow(p, balance, amount, principal))
		balance = roundCents(balance - principal)
	}
	return rows, nil
}

func newRow(p domain.Period, opening, payment, principal float64) domain.ScheduleRow {
	return domain.ScheduleRow{
		Period:         p,
		OpeningBalance: opening,
		Payment:        payment,
		Principal:      principal,
		Interest:       roundCents(payment - principal),
		ClosingBalance: roundCents(opening - principal),
	}
}
