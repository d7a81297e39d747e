package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"loan-amortizer/amortization"
	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

type ScheduleConfig struct {
	Limits   Limits
	CacheTTL time.Duration
}

// ScheduleService turns schedule requests into computed schedules. Results
// are cached by a fingerprint of the normalized request and, for floating
// schedules, the curve snapshot they were priced off.
type ScheduleService struct {
	curves *CurveService
	cache  repository.CacheRepository
	cfg    ScheduleConfig
	logger *slog.Logger
}

// NewScheduleService creates a new ScheduleService. curves may be nil when
// only fixed-rate schedules are served.
func NewScheduleService(
	curves *CurveService,
	cache repository.CacheRepository,
	cfg ScheduleConfig,
	logger *slog.Logger,
) *ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Limits == (Limits{}) {
		cfg.Limits = DefaultLimits()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &ScheduleService{curves: curves, cache: cache, cfg: cfg, logger: logger}
}

// cacheRequest is the normalized form of a request that feeds the cache key.
type cacheRequest struct {
	Terms    domain.LoanTerms            `json:"terms"`
	Strategy domain.AmortizationStrategy `json:"strategy"`
	Floating *domain.FloatingRate        `json:"floating,omitempty"`
	Curve    uint64                      `json:"curve,omitempty"`
}

// Generate validates req and computes its schedule.
func (s *ScheduleService) Generate(ctx context.Context, req domain.ScheduleRequest) (domain.Schedule, error) {
	terms, err := ParseLoanTerms(req.Loan, s.cfg.Limits)
	if err != nil {
		return domain.Schedule{}, err
	}
	strategy, err := domain.ParseStrategy(req.Strategy)
	if err != nil {
		return domain.Schedule{}, err
	}
	rateType, err := domain.ParseRateType(req.RateType)
	if err != nil {
		return domain.Schedule{}, err
	}

	key := cacheRequest{Terms: terms, Strategy: strategy}
	var rateAt amortization.RateFunc
	if rateType == domain.FloatingType {
		floating, err := parseFloating(req, terms)
		if err != nil {
			return domain.Schedule{}, err
		}
		if s.curves == nil {
			return domain.Schedule{}, fmt.Errorf("%w: %s", repository.ErrCurveNotFound, floating.Curve)
		}
		fn, snap, err := s.curves.RateFunction(floating.Curve)
		if err != nil {
			return domain.Schedule{}, err
		}
		key.Floating = &floating
		key.Curve = snap.Checksum
		rateAt = fn.At
	}

	cacheKey, err := s.cacheKey(key)
	if err != nil {
		return domain.Schedule{}, err
	}
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var sched domain.Schedule
		if err := json.Unmarshal([]byte(cached), &sched); err == nil {
			s.logger.DebugContext(ctx, "schedule cache hit", slog.String("key", cacheKey))
			return sched, nil
		}
		s.logger.WarnContext(ctx, "discarding unreadable cached schedule", slog.String("key", cacheKey))
	}

	rows, err := amortization.Generate(terms, strategy)
	if err != nil {
		return domain.Schedule{}, err
	}
	if rateAt != nil {
		rows, err = amortization.ApplyFloating(rows, rateAt, key.Floating.Spread)
		if err != nil {
			return domain.Schedule{}, err
		}
	}

	sched := domain.Schedule{
		ID:       uuid.NewString(),
		Strategy: strategy,
		Terms:    terms,
		Floating: key.Floating,
		Rows:     rows,
		Totals:   amortization.Totals(rows),
	}

	// Cache the schedule (not critical if it fails)
	if data, err := json.Marshal(sched); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), s.cfg.CacheTTL); err != nil {
			s.logger.WarnContext(ctx, "failed to cache schedule",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "schedule generated",
		slog.String("id", sched.ID),
		slog.String("strategy", string(strategy)),
		slog.String("rate_type", string(rateType)),
		slog.Int("rows", len(rows)),
	)
	return sched, nil
}

func parseFloating(req domain.ScheduleRequest, terms domain.LoanTerms) (domain.FloatingRate, error) {
	reset := terms.Frequency
	if req.ResetFrequency != "" {
		f, err := domain.ParseFrequency(req.ResetFrequency)
		if err != nil {
			return domain.FloatingRate{}, &domain.InvalidTermsError{
				Field:  "reset_frequency",
				Reason: fmt.Sprintf("unsupported token %q", req.ResetFrequency),
			}
		}
		reset = f
	}
	if math.IsNaN(req.SpreadPercent) || math.Abs(req.SpreadPercent) > MaxSpreadPercent {
		return domain.FloatingRate{}, &domain.InvalidTermsError{
			Field:  "spread_percent",
			Reason: fmt.Sprintf("must be within ±%.0f%%", MaxSpreadPercent),
		}
	}
	return domain.FloatingRate{
		Curve:          domain.CurveTermFor(reset),
		ResetFrequency: reset,
		Spread:         req.SpreadPercent / 100,
	}, nil
}

func (s *ScheduleService) cacheKey(req cacheRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return "schedule:" + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
