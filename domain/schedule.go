package domain

import (
	"fmt"
	"strings"
	"time"
)

type Period struct {
	Number      int       `json:"payment_number"`
	Start       time.Time `json:"period_start"`
	End         time.Time `json:"period_end"`
	PaymentDate time.Time `json:"payment_date"`
	Days        float64   `json:"days"` // accrual days under the loan's basis
}

type ScheduleRow struct {
	Period
	OpeningBalance float64 `json:"outstanding_balance"`
	Payment        float64 `json:"payment"`
	Principal      float64 `json:"principal"`
	Interest       float64 `json:"interest"`
	ClosingBalance float64 `json:"remaining_balance"`
	// EffectiveRate is the annualized rate in percent charged on a floating
	// schedule row. Nil for fixed-rate schedules.
	EffectiveRate *float64 `json:"interest_rate_pct,omitempty"`
}

type ScheduleTotals struct {
	Payments  float64 `json:"payments"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
}

type Schedule struct {
	ID       string               `json:"id"`
	Strategy AmortizationStrategy `json:"strategy"`
	Terms    LoanTerms            `json:"terms"`
	Floating *FloatingRate        `json:"floating,omitempty"`
	Rows     []ScheduleRow        `json:"rows"`
	Totals   ScheduleTotals       `json:"totals"`
}

// FloatingRate describes the curve overlay applied to a schedule.
type FloatingRate struct {
	Curve          CurveTerm `json:"curve"`
	ResetFrequency Frequency `json:"reset_frequency"`
	Spread         float64   `json:"spread"` // decimal fraction
}

type RateType string

const (
	FixedRate    RateType = "fixed"
	FloatingType RateType = "floating"
)

func ParseRateType(s string) (RateType, error) {
	switch rt := RateType(strings.ToLower(strings.TrimSpace(s))); rt {
	case "", FixedRate:
		return FixedRate, nil
	case FloatingType:
		return FloatingType, nil
	}
	return "", &InvalidTermsError{Field: "rate_type", Reason: fmt.Sprintf("unsupported token %q", s)}
}

type ScheduleRequest struct {
	Loan           LoanInput `json:"loan"`
	Strategy       string    `json:"strategy"`
	RateType       string    `json:"rate_type,omitempty"`
	ResetFrequency string    `json:"reset_frequency,omitempty"`
	SpreadPercent  float64   `json:"spread_percent,omitempty"`
}

// OutputFormat selects the column view of a schedule.
type OutputFormat string

const (
	SimpleFormat OutputFormat = "simple"
	FullFormat   OutputFormat = "full"
)

// ParseOutputFormat also accepts the "P+I" label for the full view.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full", "p+i", "p&i":
		return FullFormat, nil
	case "simple", "simple amortization":
		return SimpleFormat, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}
