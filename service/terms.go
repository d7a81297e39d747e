package service

import (
	"fmt"
	"math"

	"loan-amortizer/domain"
)

// ParseLoanTerms normalizes raw input into validated LoanTerms: dates are
// parsed to calendar dates, the rate percentage becomes a fraction and
// tokens become enums.
func ParseLoanTerms(input domain.LoanInput, limits Limits) (domain.LoanTerms, error) {
	settlement, err := domain.ParseDate("settlement_date", input.SettlementDate)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	maturity, err := domain.ParseDate("maturity_date", input.MaturityDate)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	firstPayment, err := domain.ParseDate("first_payment_date", input.FirstPaymentDate)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	freq, err := domain.ParseFrequency(input.Frequency)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	basis, err := domain.ParseDayCountBasis(input.BasisNumerator, input.BasisDenominator)
	if err != nil {
		return domain.LoanTerms{}, err
	}

	if input.Notional > limits.MaxNotional {
		return domain.LoanTerms{}, &domain.InvalidTermsError{
			Field:  "notional",
			Reason: fmt.Sprintf("exceeds the maximum of %.2f", limits.MaxNotional),
		}
	}
	if math.IsNaN(input.RatePercent) || input.RatePercent > limits.MaxRatePercent {
		return domain.LoanTerms{}, &domain.InvalidTermsError{
			Field:  "rate_percent",
			Reason: fmt.Sprintf("must not exceed %.2f%%", limits.MaxRatePercent),
		}
	}
	if input.RatePercent < 0 {
		return domain.LoanTerms{}, &domain.DegenerateRateError{Rate: input.RatePercent / 100}
	}
	if input.AmortizationYears > limits.MaxAmortizationYears {
		return domain.LoanTerms{}, &domain.InvalidTermsError{
			Field:  "amortization_years",
			Reason: fmt.Sprintf("exceeds the maximum of %d years", limits.MaxAmortizationYears),
		}
	}

	terms := domain.LoanTerms{
		SettlementDate:    settlement,
		MaturityDate:      maturity,
		FirstPaymentDate:  firstPayment,
		Notional:          input.Notional,
		Rate:              input.RatePercent / 100,
		Basis:             basis,
		AmortizationYears: input.AmortizationYears,
		Frequency:         freq,
	}
	if err := terms.Validate(); err != nil {
		return domain.LoanTerms{}, err
	}
	return terms, nil
}
