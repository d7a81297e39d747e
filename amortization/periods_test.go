package amortization

import (
	"errors"
	"testing"
	"time"

	"loan-amortizer/domain"
)

func TestPeriods_MonthlyStopsAtMaturity(t *testing.T) {
	periods, err := Periods(referenceTerms(domain.Monthly))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 120 {
		t.Fatalf("expected 120 periods, got %d", len(periods))
	}

	first := periods[0]
	if !first.Start.Equal(date(2022, time.August, 1)) || !first.End.Equal(date(2022, time.September, 1)) {
		t.Errorf("unexpected first period %s - %s", first.Start, first.End)
	}
	if last := periods[len(periods)-1]; !last.End.Equal(date(2032, time.August, 1)) {
		t.Errorf("expected last period to end at maturity, got %s", last.End)
	}
}

func TestPeriods_QuarterlyNeverPassesMaturity(t *testing.T) {
	terms := referenceTerms(domain.Quarterly)
	periods, err := Periods(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 40 {
		t.Fatalf("expected 40 periods, got %d", len(periods))
	}
	for _, p := range periods {
		if p.End.After(terms.MaturityDate) {
			t.Fatalf("period %d ends after maturity: %s", p.Number, p.End)
		}
	}
}

func TestPeriods_BoundedByAmortizationTerm(t *testing.T) {
	terms := referenceTerms(domain.Monthly)
	terms.AmortizationYears = 5

	periods, err := Periods(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 60 {
		t.Errorf("expected 60 periods, got %d", len(periods))
	}
}

func TestPeriods_ContiguousAndNumbered(t *testing.T) {
	periods, err := Periods(referenceTerms(domain.SemiAnnual))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range periods {
		if p.Number != i+1 {
			t.Errorf("period %d numbered %d", i, p.Number)
		}
		if i > 0 && !p.Start.Equal(periods[i-1].End) {
			t.Errorf("period %d does not start where period %d ends", p.Number, i)
		}
	}
}

func TestPeriods_PaymentDatesAreWeekdays(t *testing.T) {
	periods, err := Periods(referenceTerms(domain.Monthly))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rolled := 0
	for _, p := range periods {
		if isWeekend(p.PaymentDate) {
			t.Errorf("period %d pays on a weekend: %s", p.Number, p.PaymentDate)
		}
		if p.PaymentDate.Before(p.End) {
			t.Errorf("period %d pays before it ends", p.Number)
		}
		if !p.PaymentDate.Equal(p.End) {
			rolled++
		}
	}
	if rolled == 0 {
		t.Error("expected some payment dates to roll off a weekend")
	}
}

func TestPeriods_EndOfMonthAnchor(t *testing.T) {
	terms := referenceTerms(domain.Monthly)
	terms.SettlementDate = date(2023, time.January, 15)
	terms.FirstPaymentDate = date(2023, time.January, 31)
	terms.MaturityDate = date(2024, time.January, 31)

	periods, err := Periods(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := periods[1].End; !got.Equal(date(2023, time.February, 28)) {
		t.Errorf("expected clamp to Feb 28, got %s", got)
	}
	if got := periods[2].End; !got.Equal(date(2023, time.March, 31)) {
		t.Errorf("expected anchor restored to Mar 31, got %s", got)
	}
}

func TestPeriods_InvalidTerms(t *testing.T) {
	terms := referenceTerms(domain.Monthly)
	terms.FirstPaymentDate = terms.SettlementDate

	_, err := Periods(terms)
	var invalid *domain.InvalidTermsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTermsError, got %v", err)
	}
}
