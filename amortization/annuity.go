package amortization

import (
	"math"

	"loan-amortizer/domain"
)

// LevelPayment solves the constant periodic payment of a mortgage-style
// schedule over TotalPeriods periods.
//
// When the first stub is shorter than a standard period the notional is
// reduced by the interest on the missing days, anchoring the payment to a
// standard-length first period. A zero rate amortizes the notional evenly.
func LevelPayment(terms domain.LoanTerms) (float64, error) {
	if err := terms.Validate(); err != nil {
		return 0, err
	}
	if terms.Rate < 0 || math.IsNaN(terms.Rate) || math.IsInf(terms.Rate, 0) {
		return 0, &domain.DegenerateRateError{Rate: terms.Rate}
	}

	n := float64(terms.TotalPeriods())
	if terms.Rate == 0 {
		return roundCents(terms.Notional / n), nil
	}

	den := float64(terms.Basis.Denominator)
	stub := actualDays(terms.SettlementDate, terms.FirstPaymentDate)
	standard := math.Max(stub, float64(terms.Frequency.StandardPeriodDays()))
	adjusted := terms.Notional + terms.Notional*(stub-standard)*terms.Rate/den

	periodic := terms.Rate * terms.Basis.NumeratorDays() / den / float64(terms.Frequency.PeriodsPerYear())
	payment := adjusted * periodic / (1 - math.Pow(1+periodic, -n))
	if math.IsNaN(payment) || math.IsInf(payment, 0) || payment <= 0 {
		return 0, &domain.DegenerateRateError{Rate: terms.Rate}
	}
	return roundCents(payment), nil
}
