package domain

import (
	"fmt"
	"strings"
	"time"
)

type CurvePoint struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"` // decimal fraction, 0.03 for 3%
}

// CurveTerm names one of the forward curve tables.
type CurveTerm string

const (
	OneMonthTerm   CurveTerm = "1M"
	ThreeMonthTerm CurveTerm = "3M"
)

func ParseCurveTerm(s string) (CurveTerm, error) {
	switch t := CurveTerm(strings.ToUpper(strings.TrimSpace(s))); t {
	case OneMonthTerm, ThreeMonthTerm:
		return t, nil
	}
	return "", fmt.Errorf("unsupported curve term %q", s)
}

// CurveTermFor picks the curve table used for a reset frequency. There is
// no 6M table, so semi-annual resets read the 3M curve.
func CurveTermFor(reset Frequency) CurveTerm {
	if reset == Monthly {
		return OneMonthTerm
	}
	return ThreeMonthTerm
}

// CurveSnapshot is one loaded version of a curve table.
type CurveSnapshot struct {
	Term     CurveTerm    `json:"term"`
	Points   []CurvePoint `json:"points"`
	Source   string       `json:"source"`
	Checksum uint64       `json:"checksum"`
	Version  uint64       `json:"version"`
	LoadedAt time.Time    `json:"loaded_at"`
}
