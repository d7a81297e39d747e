package amortization

import (
	"errors"
	"math"
	"testing"

	"loan-amortizer/domain"
)

func TestGenerate_UnknownStrategy(t *testing.T) {
	rows, err := Generate(referenceTerms(domain.Monthly), domain.AmortizationStrategy("balloon"))
	var invalid *domain.InvalidTermsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTermsError, got %v", err)
	}
	if rows != nil {
		t.Error("expected no rows on error")
	}
}

func TestGenerate_UnknownFrequency(t *testing.T) {
	terms := referenceTerms(domain.Frequency("2W"))
	_, err := Generate(terms, domain.MortgageStyle)
	var invalid *domain.InvalidTermsError
	if !errors.As(err, &invalid) || invalid.Field != "frequency" {
		t.Fatalf("expected frequency error, got %v", err)
	}
}

func TestGenerate_NegativeRateAbortsEveryStrategy(t *testing.T) {
	terms := referenceTerms(domain.Monthly)
	terms.Rate = -0.02
	for _, s := range []domain.AmortizationStrategy{domain.MortgageStyle, domain.HybridStyle, domain.StraightLine} {
		rows, err := Generate(terms, s)
		var degenerate *domain.DegenerateRateError
		if !errors.As(err, &degenerate) {
			t.Errorf("%s: expected DegenerateRateError, got %v", s, err)
		}
		if rows != nil {
			t.Errorf("%s: expected no rows", s)
		}
	}
}

func TestGenerate_IndependentCalls(t *testing.T) {
	terms := referenceTerms(domain.Monthly)
	a := mustGenerate(t, terms, domain.MortgageStyle)
	a[0].Payment = -1
	b := mustGenerate(t, terms, domain.MortgageStyle)
	if b[0].Payment == -1 {
		t.Error("schedules share state between calls")
	}
}

func TestTotals(t *testing.T) {
	rows := mustGenerate(t, referenceTerms(domain.Quarterly), domain.StraightLine)
	totals := Totals(rows)

	if !almostEqual(totals.Principal, 600000, 0.01) {
		t.Errorf("expected principal 600000, got %.2f", totals.Principal)
	}
	if !almostEqual(totals.Payments, totals.Principal+totals.Interest, 0.01*float64(len(rows))) {
		t.Errorf("payments %.2f != principal %.2f + interest %.2f", totals.Payments, totals.Principal, totals.Interest)
	}
}

func TestGenerate_NonFiniteNotionalRejected(t *testing.T) {
	for _, notional := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		terms := referenceTerms(domain.Monthly)
		terms.Notional = notional
		for _, s := range []domain.AmortizationStrategy{domain.MortgageStyle, domain.HybridStyle, domain.StraightLine} {
			rows, err := Generate(terms, s)
			var invalid *domain.InvalidTermsError
			if !errors.As(err, &invalid) || invalid.Field != "notional" {
				t.Errorf("%s notional %v: expected notional error, got %v", s, notional, err)
			}
			if rows != nil {
				t.Errorf("%s notional %v: expected no rows", s, notional)
			}
		}
	}
}
