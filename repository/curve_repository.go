package repository

import (
	"errors"

	"loan-amortizer/domain"
)

var ErrCurveNotFound = errors.New("curve snapshot not found")

// CurveRepository holds the current forward curve snapshot per curve term.
type CurveRepository interface {
	Save(snapshot domain.CurveSnapshot) (domain.CurveSnapshot, error)
	Get(term domain.CurveTerm) (domain.CurveSnapshot, error)
	Terms() []domain.CurveTerm
}
