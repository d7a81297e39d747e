package repository

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"loan-amortizer/domain"
)

// CurveRepositoryMemory is an in-memory implementation of CurveRepository.
// Each Save replaces the term's snapshot and bumps its version.
type CurveRepositoryMemory struct {
	mu        sync.RWMutex
	snapshots map[domain.CurveTerm]domain.CurveSnapshot
	now       func() time.Time
}

func NewCurveRepositoryMemory() *CurveRepositoryMemory {
	return &CurveRepositoryMemory{
		snapshots: make(map[domain.CurveTerm]domain.CurveSnapshot),
		now:       time.Now,
	}
}

// Save stores a copy of snapshot, stamping its version and load time.
func (r *CurveRepositoryMemory) Save(snapshot domain.CurveSnapshot) (domain.CurveSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot.Points = slices.Clone(snapshot.Points)
	snapshot.Version = r.snapshots[snapshot.Term].Version + 1
	snapshot.LoadedAt = r.now().UTC()
	r.snapshots[snapshot.Term] = snapshot
	return snapshot, nil
}

func (r *CurveRepositoryMemory) Get(term domain.CurveTerm) (domain.CurveSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.snapshots[term]
	if !ok {
		return domain.CurveSnapshot{}, fmt.Errorf("%w: %s", ErrCurveNotFound, term)
	}
	s.Points = slices.Clone(s.Points)
	return s, nil
}

func (r *CurveRepositoryMemory) Terms() []domain.CurveTerm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	terms := make([]domain.CurveTerm, 0, len(r.snapshots))
	for t := range r.snapshots {
		terms = append(terms, t)
	}
	slices.Sort(terms)
	return terms
}

var _ CurveRepository = (*CurveRepositoryMemory)(nil)
