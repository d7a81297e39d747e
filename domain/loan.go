package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// LoanInput is the raw form of a loan as it arrives from a caller. Dates are
// strings and the rate is a percentage; ParseLoanTerms in the service layer
// turns it into LoanTerms.
type LoanInput struct {
	SettlementDate    string  `json:"settlement_date"`
	MaturityDate      string  `json:"maturity_date"`
	FirstPaymentDate  string  `json:"first_payment_date"`
	Notional          float64 `json:"notional"`
	RatePercent       float64 `json:"rate_percent"`
	BasisNumerator    string  `json:"basis_numerator"`
	BasisDenominator  int     `json:"basis_denominator"`
	AmortizationYears int     `json:"amortization_years"`
	Frequency         string  `json:"frequency"`
}

// LoanTerms is the validated, immutable description of a loan.
type LoanTerms struct {
	SettlementDate    time.Time     `json:"settlement_date"`
	MaturityDate      time.Time     `json:"maturity_date"`
	FirstPaymentDate  time.Time     `json:"first_payment_date"`
	Notional          float64       `json:"notional"`
	Rate              float64       `json:"rate"` // decimal fraction, 0.0703 for 7.03%
	Basis             DayCountBasis `json:"basis"`
	AmortizationYears int           `json:"amortization_years"`
	Frequency         Frequency     `json:"frequency"`
}

// TotalPeriods is the number of periods the amortization term implies.
func (t LoanTerms) TotalPeriods() int {
	return t.AmortizationYears * t.Frequency.PeriodsPerYear()
}

// Validate reports the first violated invariant as an *InvalidTermsError.
func (t LoanTerms) Validate() error {
	if !t.Frequency.Valid() {
		return &InvalidTermsError{Field: "frequency", Reason: fmt.Sprintf("unsupported token %q", string(t.Frequency))}
	}
	if err := t.Basis.Validate(); err != nil {
		return err
	}
	if !(t.Notional > 0) || math.IsInf(t.Notional, 0) {
		return &InvalidTermsError{Field: "notional", Reason: "must be a positive finite amount"}
	}
	if t.AmortizationYears <= 0 {
		return &InvalidTermsError{Field: "amortization_years", Reason: "must be positive"}
	}
	if !t.SettlementDate.Before(t.FirstPaymentDate) {
		return &InvalidTermsError{Field: "first_payment_date", Reason: "must be after settlement date"}
	}
	if !t.FirstPaymentDate.Before(t.MaturityDate) {
		return &InvalidTermsError{Field: "maturity_date", Reason: "must be after first payment date"}
	}
	return nil
}

// Frequency is the payment frequency token.
type Frequency string

const (
	Monthly    Frequency = "1M"
	Quarterly  Frequency = "3M"
	SemiAnnual Frequency = "6M"
)

// ParseFrequency accepts 1M, 3M or 6M (case-insensitive).
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", &InvalidTermsError{Field: "frequency", Reason: fmt.Sprintf("unsupported token %q", s)}
	}
	return f, nil
}

func (f Frequency) Valid() bool {
	switch f {
	case Monthly, Quarterly, SemiAnnual:
		return true
	}
	return false
}

// Months is the calendar month increment between regular period ends.
func (f Frequency) Months() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case SemiAnnual:
		return 6
	}
	return 0
}

func (f Frequency) PeriodsPerYear() int {
	if m := f.Months(); m > 0 {
		return 12 / m
	}
	return 0
}

// StandardPeriodDays is the nominal length of a regular period, used to
// detect a short first stub.
func (f Frequency) StandardPeriodDays() int {
	return 30 * f.Months()
}

// NumeratorBasis is the day-count numerator method.
type NumeratorBasis string

const (
	Actual NumeratorBasis = "ACT"
	Thirty NumeratorBasis = "30"
)

// DayCountBasis pairs a numerator method with a 360 or 365 denominator.
type DayCountBasis struct {
	Numerator   NumeratorBasis `json:"numerator"`
	Denominator int            `json:"denominator"`
}

var (
	Actual360 = DayCountBasis{Numerator: Actual, Denominator: 360}
	Actual365 = DayCountBasis{Numerator: Actual, Denominator: 365}
	Thirty360 = DayCountBasis{Numerator: Thirty, Denominator: 360}
)

// ParseDayCountBasis builds a basis from its two tokens.
func ParseDayCountBasis(numerator string, denominator int) (DayCountBasis, error) {
	b := DayCountBasis{
		Numerator:   NumeratorBasis(strings.ToUpper(strings.TrimSpace(numerator))),
		Denominator: denominator,
	}
	if err := b.Validate(); err != nil {
		return DayCountBasis{}, err
	}
	return b, nil
}

func (b DayCountBasis) Validate() error {
	if b.Numerator != Actual && b.Numerator != Thirty {
		return &InvalidTermsError{Field: "basis_numerator", Reason: fmt.Sprintf("unsupported token %q", string(b.Numerator))}
	}
	if b.Denominator != 360 && b.Denominator != 365 {
		return &InvalidTermsError{Field: "basis_denominator", Reason: fmt.Sprintf("unsupported value %d", b.Denominator)}
	}
	return nil
}

// NumeratorDays is the year length implied by the numerator, used when the
// periodic rate is derived from the annual rate.
func (b DayCountBasis) NumeratorDays() float64 {
	if b.Numerator == Actual {
		return 365
	}
	return 360
}

func (b DayCountBasis) String() string {
	return fmt.Sprintf("%s/%d", b.Numerator, b.Denominator)
}

// AmortizationStrategy selects how principal and interest are allocated.
type AmortizationStrategy string

const (
	MortgageStyle AmortizationStrategy = "mortgage"
	HybridStyle   AmortizationStrategy = "hybrid"
	StraightLine  AmortizationStrategy = "straight_line"
)

// ParseStrategy accepts the canonical tokens as well as the display labels
// "Mortgage Style", "Hybrid Style" and "Straight Line".
func ParseStrategy(s string) (AmortizationStrategy, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	norm = strings.TrimSuffix(norm, "_style")

	st := AmortizationStrategy(norm)
	if !st.Valid() {
		return "", &InvalidTermsError{Field: "strategy", Reason: fmt.Sprintf("unsupported token %q", s)}
	}
	return st, nil
}

func (s AmortizationStrategy) Valid() bool {
	switch s {
	case MortgageStyle, HybridStyle, StraightLine:
		return true
	}
	return false
}

// dateLayouts are the accepted calendar date spellings.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// ParseDate normalizes a calendar date string to midnight UTC.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidTermsError{Field: field, Reason: fmt.Sprintf("unparseable date %q", s)}
}
