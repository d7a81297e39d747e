package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"loan-amortizer/curve"
	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

// CurveService validates, stores and evaluates forward curve snapshots.
type CurveService struct {
	repo    repository.CurveRepository
	sources map[domain.CurveTerm]string
	logger  *slog.Logger
}

// NewCurveService creates a CurveService. sources maps each curve term to
// the file ReloadAll reads it from; it may be empty.
func NewCurveService(
	repo repository.CurveRepository,
	sources map[domain.CurveTerm]string,
	logger *slog.Logger,
) *CurveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurveService{repo: repo, sources: sources, logger: logger}
}

// Store validates points by fitting them and saves them as the term's
// current snapshot.
func (s *CurveService) Store(term domain.CurveTerm, points []domain.CurvePoint, source string) (domain.CurveSnapshot, error) {
	if _, err := curve.Build(points); err != nil {
		return domain.CurveSnapshot{}, err
	}
	snap, err := s.repo.Save(domain.CurveSnapshot{
		Term:     term,
		Points:   points,
		Source:   source,
		Checksum: checksum(points),
	})
	if err != nil {
		return domain.CurveSnapshot{}, fmt.Errorf("save curve %s: %w", term, err)
	}

	s.logger.Info("curve snapshot stored",
		slog.String("term", string(term)),
		slog.String("source", source),
		slog.Int("points", len(points)),
		slog.Uint64("version", snap.Version),
	)
	return snap, nil
}

// LoadFile parses a curve table from disk and stores it.
func (s *CurveService) LoadFile(term domain.CurveTerm, path string) (domain.CurveSnapshot, error) {
	points, err := curve.LoadFile(path)
	if err != nil {
		return domain.CurveSnapshot{}, err
	}
	return s.Store(term, points, path)
}

// ReloadAll re-reads every configured curve file. A failing file leaves the
// previous snapshot in place; all failures are returned joined.
func (s *CurveService) ReloadAll(ctx context.Context) error {
	var errs []error
	for term, path := range s.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.LoadFile(term, path); err != nil {
			s.logger.WarnContext(ctx, "curve reload failed",
				slog.String("term", string(term)),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("reload %s: %w", term, err))
		}
	}
	return errors.Join(errs...)
}

// Load returns the term's current snapshot.
func (s *CurveService) Load(term domain.CurveTerm) (domain.CurveSnapshot, error) {
	return s.repo.Get(term)
}

// RateFunction fits the term's current snapshot.
func (s *CurveService) RateFunction(term domain.CurveTerm) (*curve.RateFunction, domain.CurveSnapshot, error) {
	snap, err := s.repo.Get(term)
	if err != nil {
		return nil, domain.CurveSnapshot{}, err
	}
	f, err := curve.Build(snap.Points)
	if err != nil {
		return nil, domain.CurveSnapshot{}, err
	}
	return f, snap, nil
}

// RateAt evaluates the term's curve months after its first point.
func (s *CurveService) RateAt(term domain.CurveTerm, months float64) (float64, error) {
	f, _, err := s.RateFunction(term)
	if err != nil {
		return 0, err
	}
	return f.At(months), nil
}

// CurveSamples is a sampled view of one curve snapshot. Months count from
// Origin; Span is the month offset of the last quoted point.
type CurveSamples struct {
	Term    domain.CurveTerm `json:"term"`
	Version uint64           `json:"version"`
	Origin  time.Time        `json:"origin"`
	Span    float64          `json:"span_months"`
	Samples []curve.Sample   `json:"samples"`
}

// Samples evaluates n evenly spaced points from 0 to months.
func (s *CurveService) Samples(term domain.CurveTerm, months float64, n int) (CurveSamples, error) {
	if n <= 0 || n > MaxCurveSamples {
		return CurveSamples{}, fmt.Errorf("sample count must be between 1 and %d", MaxCurveSamples)
	}
	f, snap, err := s.RateFunction(term)
	if err != nil {
		return CurveSamples{}, err
	}
	return CurveSamples{
		Term:    term,
		Version: snap.Version,
		Origin:  f.Origin(),
		Span:    f.Span(),
		Samples: f.Samples(0, months, n),
	}, nil
}

func checksum(points []domain.CurvePoint) uint64 {
	h := xxhash.New()
	var buf [16]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], uint64(p.Date.Unix()))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Rate))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Terms lists the curve tables that currently hold a snapshot.
func (s *CurveService) Terms() []domain.CurveTerm {
	return s.repo.Terms()
}
