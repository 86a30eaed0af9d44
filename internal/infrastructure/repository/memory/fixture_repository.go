package memory

import (
	"context"
	"sync"

	"github.com/premtable/matchday/internal/domain/fixture"
)

// FixtureRepository is the in-memory persistence adapter used by tests
// and by the CLI when no database is configured.
type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
}

func NewFixtureRepository(seed []fixture.Fixture) *FixtureRepository {
	out := make([]fixture.Fixture, len(seed))
	copy(out, seed)
	return &FixtureRepository{fixtures: out}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, len(r.fixtures))
	copy(out, r.fixtures)
	return out, nil
}

func (r *FixtureRepository) ReplaceAll(_ context.Context, fixtures []fixture.Fixture) error {
	out := make([]fixture.Fixture, len(fixtures))
	copy(out, fixtures)

	r.mu.Lock()
	r.fixtures = out
	r.mu.Unlock()
	return nil
}
