package amortization

import (
	"fmt"
	"math"

	"loan-amortizer/domain"
)

type generator func(domain.LoanTerms, []domain.Period) ([]domain.ScheduleRow, error)

var generators = map[domain.AmortizationStrategy]generator{
	domain.MortgageStyle: mortgageRows,
	domain.HybridStyle:   hybridRows,
	domain.StraightLine:  straightLineRows,
}

// Generate builds the schedule rows of terms under strategy. On error no
// rows are returned.
func Generate(terms domain.LoanTerms, strategy domain.AmortizationStrategy) ([]domain.ScheduleRow, error) {
	gen, ok := generators[strategy]
	if !ok {
		return nil, &domain.InvalidTermsError{Field: "strategy", Reason: fmt.Sprintf("unsupported token %q", string(strategy))}
	}
	if terms.Rate < 0 || math.IsNaN(terms.Rate) || math.IsInf(terms.Rate, 0) {
		return nil, &domain.DegenerateRateError{Rate: terms.Rate}
	}

	periods, err := Periods(terms)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, &domain.InvalidTermsError{Field: "maturity_date", Reason: "no period fits before maturity"}
	}
	return gen(terms, periods)
}

// Totals sums the cash flows of a schedule.
func Totals(rows []domain.ScheduleRow) domain.ScheduleTotals {
	var t domain.ScheduleTotals
	for _, r := range rows {
		t.Payments += r.Payment
		t.Principal += r.Principal
		t.Interest += r.Interest
	}
	return domain.ScheduleTotals{
		Payments:  roundCents(t.Payments),
		Principal: roundCents(t.Principal),
		Interest:  roundCents(t.Interest),
	}
}
