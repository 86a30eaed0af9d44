package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/premtable/matchday/internal/domain/competition"
	"github.com/premtable/matchday/internal/domain/fixture"
	"github.com/premtable/matchday/internal/domain/standing"
	"github.com/premtable/matchday/internal/platform/cache"
	"github.com/premtable/matchday/internal/platform/logging"
)

// Aggregator is what ScheduleService needs from the fixture
// aggregator; AggregatorService satisfies it.
type Aggregator interface {
	Aggregate(ctx context.Context, selected map[competition.ID]bool) (AggregateResult, error)
}

// Snapshot is one internally consistent view of the schedule: merged
// fixtures, the current matchweek pointer, and recomputed form.
// Degraded marks a snapshot served from stored data because every
// source failed.
type Snapshot struct {
	Fixtures         []fixture.Fixture
	CurrentMatchweek int
	Form             map[string]string
	SourcesUsed      []string
	Degraded         bool
}

// ScheduleService runs the full reconciliation sequence: aggregate,
// detect the current matchweek over stored plus fresh fixtures,
// normalize upcoming matchweeks, rebuild form, persist, cache.
type ScheduleService struct {
	aggregator   Aggregator
	fixtureRepo  fixture.Repository
	standingRepo standing.Repository
	store        *cache.Store
	cfg          MatchweekConfig
	logger       *logging.Logger
}

func NewScheduleService(
	aggregator Aggregator,
	fixtureRepo fixture.Repository,
	standingRepo standing.Repository,
	store *cache.Store,
	cfg MatchweekConfig,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		aggregator:   aggregator,
		fixtureRepo:  fixtureRepo,
		standingRepo: standingRepo,
		store:        store,
		cfg:          normalizeMatchweekConfig(cfg),
		logger:       logger,
	}
}

// Snapshot returns a cached snapshot when one is fresh, refreshing
// otherwise. Concurrent refreshes for the same selection collapse into
// one.
func (s *ScheduleService) Snapshot(ctx context.Context, selected map[competition.ID]bool) (Snapshot, error) {
	if s.store == nil {
		return s.Refresh(ctx, selected)
	}

	value, err := s.store.GetOrLoad(ctx, snapshotCacheKey(selected), func(ctx context.Context) (any, error) {
		return s.Refresh(ctx, selected)
	})
	if err != nil {
		return Snapshot{}, err
	}

	snapshot, ok := value.(Snapshot)
	if !ok {
		return Snapshot{}, fmt.Errorf("unexpected cached snapshot type %T", value)
	}
	return snapshot, nil
}

// Refresh always re-runs the pipeline. On total aggregation failure it
// falls back to the stored fixtures and marks the snapshot degraded;
// the error only propagates when there is no stored data to show
// either.
func (s *ScheduleService) Refresh(ctx context.Context, selected map[competition.ID]bool) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Refresh")
	defer span.End()

	stored := s.loadStored(ctx)

	agg, err := s.aggregator.Aggregate(ctx, selected)
	if err != nil {
		if len(stored) == 0 {
			return Snapshot{}, fmt.Errorf("refresh schedule: %w", err)
		}
		s.logger.WarnContext(ctx, "serving degraded snapshot from stored fixtures", "err", err)
		snapshot := s.reconcile(ctx, stored, nil)
		snapshot.Degraded = true
		return snapshot, nil
	}

	merged := mergePreferringFresh(agg.Fixtures, stored)
	snapshot := s.reconcile(ctx, merged, agg.SourcesUsed)

	if err := s.persist(ctx, snapshot); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

// reconcile runs detect → normalize → form over one fixture list.
func (s *ScheduleService) reconcile(ctx context.Context, fixtures []fixture.Fixture, sourcesUsed []string) Snapshot {
	current := DetectCurrentMatchweek(fixtures, s.cfg)
	normalized := NormalizeMatchweeks(fixtures, current, s.cfg)

	var form map[string]string
	if s.standingRepo != nil {
		rows, err := s.standingRepo.List(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "standings unavailable, skipping form rebuild", "err", err)
		} else {
			form = BuildRecentForm(normalized, rows)
		}
	}

	return Snapshot{
		Fixtures:         normalized,
		CurrentMatchweek: current,
		Form:             form,
		SourcesUsed:      sourcesUsed,
	}
}

func (s *ScheduleService) loadStored(ctx context.Context) []fixture.Fixture {
	if s.fixtureRepo == nil {
		return nil
	}
	stored, err := s.fixtureRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "stored fixtures unavailable", "err", err)
		return nil
	}
	return stored
}

func (s *ScheduleService) persist(ctx context.Context, snapshot Snapshot) error {
	if s.fixtureRepo != nil {
		if err := s.fixtureRepo.ReplaceAll(ctx, snapshot.Fixtures); err != nil {
			return fmt.Errorf("persist fixtures: %w", err)
		}
	}

	if s.standingRepo != nil && snapshot.Form != nil {
		rows, err := s.standingRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("load standings for form update: %w", err)
		}
		changed := false
		for i, row := range rows {
			if form, ok := snapshot.Form[row.Club]; ok && form != row.Form {
				rows[i].Form = form
				changed = true
			}
		}
		if changed {
			if err := s.standingRepo.ReplaceAll(ctx, rows); err != nil {
				return fmt.Errorf("persist standings form: %w", err)
			}
		}
	}

	return nil
}

// mergePreferringFresh keeps every freshly aggregated fixture and
// retains stored fixtures whose id no longer appears in any source;
// sources drop old rounds from their pages, but played history must
// survive for detection and form.
func mergePreferringFresh(fresh, stored []fixture.Fixture) []fixture.Fixture {
	if len(stored) == 0 {
		return fresh
	}

	seen := make(map[string]bool, len(fresh))
	out := make([]fixture.Fixture, 0, len(fresh)+len(stored))
	for _, f := range fresh {
		seen[f.ID] = true
		out = append(out, f)
	}
	for _, f := range stored {
		if !seen[f.ID] {
			out = append(out, f)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func snapshotCacheKey(selected map[competition.ID]bool) string {
	ids := make([]string, 0, len(selected))
	for id, ok := range selected {
		if ok {
			ids = append(ids, string(id))
		}
	}
	sort.Strings(ids)
	return "schedule|" + strings.Join(ids, ",")
}
