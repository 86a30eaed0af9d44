package memory

import (
	"context"
	"sync"

	"github.com/premtable/matchday/internal/domain/standing"
)

type StandingRepository struct {
	mu   sync.RWMutex
	rows []standing.Standing
}

func NewStandingRepository(seed []standing.Standing) *StandingRepository {
	out := make([]standing.Standing, len(seed))
	copy(out, seed)
	return &StandingRepository{rows: out}
}

func (r *StandingRepository) List(_ context.Context) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *StandingRepository) ReplaceAll(_ context.Context, rows []standing.Standing) error {
	out := make([]standing.Standing, len(rows))
	copy(out, rows)

	r.mu.Lock()
	r.rows = out
	r.mu.Unlock()
	return nil
}
