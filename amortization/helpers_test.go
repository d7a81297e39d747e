package amortization

import (
	"math"
	"testing"
	"time"

	"loan-amortizer/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// referenceTerms is the 600k / 7.03% / 25-year loan maturing after ten years.
func referenceTerms(freq domain.Frequency) domain.LoanTerms {
	return domain.LoanTerms{
		SettlementDate:    date(2022, time.August, 1),
		MaturityDate:      date(2032, time.August, 1),
		FirstPaymentDate:  date(2022, time.September, 1),
		Notional:          600000,
		Rate:              0.0703,
		Basis:             domain.Actual360,
		AmortizationYears: 25,
		Frequency:         freq,
	}
}

// fullTermTerms matures exactly when the amortization term ends.
func fullTermTerms(basis domain.DayCountBasis, freq domain.Frequency) domain.LoanTerms {
	terms := referenceTerms(freq)
	terms.Basis = basis
	terms.MaturityDate = date(2047, time.August, 1)
	return terms
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustGenerate(t *testing.T, terms domain.LoanTerms, strategy domain.AmortizationStrategy) []domain.ScheduleRow {
	t.Helper()
	rows, err := Generate(terms, strategy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rows
}
