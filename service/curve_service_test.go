package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

const curveCSV = `1-Month Term SOFR forward curve
Date,Rate
2024-01-01,0.05
2024-07-01,0.045
2025-01-01,0.04
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCurveStore_RejectsInvalidPoints(t *testing.T) {
	svc := newCurveService()

	_, err := svc.Store(domain.OneMonthTerm, flatCurve(0.05)[:1], "test")

	var curveErr *domain.CurveDataError
	if !errors.As(err, &curveErr) {
		t.Fatalf("expected CurveDataError, got %v", err)
	}
	if _, err := svc.Load(domain.OneMonthTerm); !errors.Is(err, repository.ErrCurveNotFound) {
		t.Errorf("expected nothing stored, got %v", err)
	}
}

func TestCurveStore_VersionsAndChecksum(t *testing.T) {
	svc := newCurveService()

	first, err := svc.Store(domain.OneMonthTerm, flatCurve(0.05), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Store(domain.OneMonthTerm, flatCurve(0.05), "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, err := svc.Store(domain.OneMonthTerm, flatCurve(0.06), "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.Version != first.Version+1 {
		t.Errorf("expected version bump, got %d then %d", first.Version, second.Version)
	}
	if first.Checksum != second.Checksum {
		t.Errorf("expected equal checksums for equal points")
	}
	if third.Checksum == second.Checksum {
		t.Errorf("expected checksum to change with the rates")
	}
}

func TestCurveLoadFile_CSV(t *testing.T) {
	svc := newCurveService()
	path := writeFile(t, "one_month.csv", curveCSV)

	snap, err := svc.LoadFile(domain.OneMonthTerm, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(snap.Points))
	}
	if snap.Source != path {
		t.Errorf("expected source %s, got %s", path, snap.Source)
	}

	rate, err := svc.RateAt(domain.OneMonthTerm, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.05 {
		t.Errorf("expected 0.05 at the first point, got %v", rate)
	}
}

func TestCurveReloadAll_KeepsPreviousSnapshotOnFailure(t *testing.T) {
	good := writeFile(t, "one_month.csv", curveCSV)
	missing := filepath.Join(t.TempDir(), "three_month.csv")

	svc := NewCurveService(repository.NewCurveRepositoryMemory(), map[domain.CurveTerm]string{
		domain.OneMonthTerm:   good,
		domain.ThreeMonthTerm: missing,
	}, discardLogger())
	if _, err := svc.Store(domain.ThreeMonthTerm, flatCurve(0.03), "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.ReloadAll(context.Background())
	if err == nil {
		t.Fatalf("expected an error for the missing file")
	}

	if _, err := svc.Load(domain.OneMonthTerm); err != nil {
		t.Errorf("expected 1M curve loaded, got %v", err)
	}
	snap, err := svc.Load(domain.ThreeMonthTerm)
	if err != nil {
		t.Fatalf("expected 3M snapshot kept, got %v", err)
	}
	if snap.Source != "seed" || snap.Version != 1 {
		t.Errorf("expected seed snapshot v1, got %s v%d", snap.Source, snap.Version)
	}
}

func TestCurveReloadAll_CancelledContext(t *testing.T) {
	svc := NewCurveService(repository.NewCurveRepositoryMemory(), map[domain.CurveTerm]string{
		domain.OneMonthTerm: writeFile(t, "one_month.csv", curveCSV),
	}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.ReloadAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCurveSamples(t *testing.T) {
	svc := newCurveService()
	if _, err := svc.Store(domain.OneMonthTerm, flatCurve(0.05), "test"); err != nil {
		t.Fatalf("store: %v", err)
	}

	set, err := svc.Samples(domain.OneMonthTerm, 120, 13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Samples) != 13 {
		t.Fatalf("expected 13 samples, got %d", len(set.Samples))
	}
	if set.Samples[12].Months != 120 {
		t.Errorf("expected last sample at 120 months, got %v", set.Samples[12].Months)
	}
	if !set.Origin.Equal(flatCurve(0.05)[0].Date) || set.Version != 1 {
		t.Errorf("expected origin at the first point and version 1, got %s v%d", set.Origin, set.Version)
	}
	if set.Span < 119 || set.Span > 121 {
		t.Errorf("expected a span of about 120 months, got %v", set.Span)
	}

	if _, err := svc.Samples(domain.OneMonthTerm, 120, 0); err == nil {
		t.Errorf("expected error for zero samples")
	}
	if _, err := svc.Samples(domain.ThreeMonthTerm, 120, 10); !errors.Is(err, repository.ErrCurveNotFound) {
		t.Errorf("expected ErrCurveNotFound, got %v", err)
	}
}
