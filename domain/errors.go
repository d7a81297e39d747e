package domain

import "fmt"

// InvalidTermsError reports loan terms that violate an ordering, sign or
// token constraint.
type InvalidTermsError struct {
	Field  string
	Reason string
}

func (e *InvalidTermsError) Error() string {
	return fmt.Sprintf("invalid loan terms: %s: %s", e.Field, e.Reason)
}

// DegenerateRateError reports a rate the annuity formula cannot solve for.
type DegenerateRateError struct {
	Rate float64
}

func (e *DegenerateRateError) Error() string {
	return fmt.Sprintf("degenerate rate %g: annuity payment is undefined", e.Rate)
}

// CurveDataError reports a forward curve that cannot be interpolated.
type CurveDataError struct {
	Reason string
}

func (e *CurveDataError) Error() string {
	return "invalid curve data: " + e.Reason
}
