package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

type MockCacheRepository struct {
	mu         sync.Mutex
	GetCalls   int
	SetCalls   int
	ForceError bool
}

func (m *MockCacheRepository) Get(_ context.Context, _ string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	return "", false
}

func (m *MockCacheRepository) Set(_ context.Context, _ string, _ string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.ForceError {
		return errors.New("set error")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func referenceInput() domain.LoanInput {
	return domain.LoanInput{
		SettlementDate:    "2022-08-01",
		MaturityDate:      "2032-08-01",
		FirstPaymentDate:  "2022-09-01",
		Notional:          600000,
		RatePercent:       7.03,
		BasisNumerator:    "ACT",
		BasisDenominator:  360,
		AmortizationYears: 25,
		Frequency:         "1M",
	}
}

func flatCurve(rate float64) []domain.CurvePoint {
	return []domain.CurvePoint{
		{Date: time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC), Rate: rate},
		{Date: time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC), Rate: rate},
		{Date: time.Date(2032, 8, 1, 0, 0, 0, 0, time.UTC), Rate: rate},
	}
}

func newCurveService() *CurveService {
	return NewCurveService(repository.NewCurveRepositoryMemory(), nil, discardLogger())
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
