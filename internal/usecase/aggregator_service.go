package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/premtable/matchday/internal/domain/competition"
	"github.com/premtable/matchday/internal/domain/fixture"
	"github.com/premtable/matchday/internal/platform/logging"
	"github.com/premtable/matchday/internal/platform/resilience"
)

const (
	sourceLeaguePrimary  = "league-primary"
	sourceLeagueFallback = "league-fallback"
)

// LeagueFetcher pulls the primary league's fixtures from one source.
// Implementations guarantee best-effort extraction only; completeness,
// ordering and matchweek numbering are all suspect.
type LeagueFetcher interface {
	FetchLeagueFixtures(ctx context.Context) ([]fixture.Fixture, error)
}

// SourceFetcher pulls every fixture a schedule source currently serves.
// One source may cover several cup competitions.
type SourceFetcher interface {
	FetchBySource(ctx context.Context, source string) ([]fixture.Fixture, error)
}

type AggregatorConfig struct {
	// FetchTimeout bounds each individual source call. Zero leaves the
	// fetcher's own timeout in charge.
	FetchTimeout time.Duration
	// MaxConcurrentFetches caps the cup fetch worker pool.
	MaxConcurrentFetches int
	CircuitBreaker       resilience.CircuitBreakerConfig
}

type AggregateResult struct {
	Fixtures    []fixture.Fixture
	SourcesUsed []string
}

// AggregatorService merges fixture lists from the primary league
// source (with a sequential fallback) and any requested cup schedule
// sources into one deduplicated, date-sorted list.
type AggregatorService struct {
	primary  LeagueFetcher
	fallback LeagueFetcher
	sources  SourceFetcher
	cfg      AggregatorConfig
	logger   *logging.Logger

	mu       sync.Mutex
	breakers map[string]*resilience.CircuitBreaker
}

func NewAggregatorService(
	primary LeagueFetcher,
	fallback LeagueFetcher,
	sources SourceFetcher,
	cfg AggregatorConfig,
	logger *logging.Logger,
) *AggregatorService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxConcurrentFetches < 1 {
		cfg.MaxConcurrentFetches = 4
	}
	cfg.CircuitBreaker = resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &AggregatorService{
		primary:  primary,
		fallback: fallback,
		sources:  sources,
		cfg:      cfg,
		logger:   logger,
		breakers: make(map[string]*resilience.CircuitBreaker),
	}
}

type sourceBatch struct {
	source string
	// priority orders merged batches; the league is always 0 so its
	// record wins any id collision with a cup source.
	priority int
}

type sourceResult struct {
	source   string
	priority int
	fixtures []fixture.Fixture
	err      error
}

// Aggregate collects fixtures for the selected competitions. A single
// source failing contributes nothing and does not abort its siblings;
// only a total league failure with no cup data to show becomes an
// error.
func (s *AggregatorService) Aggregate(ctx context.Context, selected map[competition.ID]bool) (AggregateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregatorService.Aggregate")
	defer span.End()

	if len(selected) == 0 {
		return AggregateResult{}, fmt.Errorf("%w: no competitions selected", ErrInvalidInput)
	}

	leagueRequested := selected[competition.PremierLeague]
	cups := competition.Cups(selected)
	batches := batchCupSources(cups)

	results := make(chan sourceResult, len(batches)+1)

	var wg sync.WaitGroup
	if leagueRequested {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.fetchLeague(ctx)
		}()
	}

	if len(batches) > 0 {
		poolSize := s.cfg.MaxConcurrentFetches
		if len(batches) < poolSize {
			poolSize = len(batches)
		}
		pool, err := ants.NewPool(poolSize)
		if err != nil {
			return AggregateResult{}, fmt.Errorf("create fetch worker pool: %w", err)
		}
		defer pool.Release()

		for _, batch := range batches {
			batch := batch
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				fixtures, fetchErr := s.callSource(ctx, batch.source, func(ctx context.Context) ([]fixture.Fixture, error) {
					return s.sources.FetchBySource(ctx, batch.source)
				})
				results <- sourceResult{
					source:   batch.source,
					priority: batch.priority,
					fixtures: fixtures,
					err:      fetchErr,
				}
			}); err != nil {
				wg.Done()
				return AggregateResult{}, fmt.Errorf("submit fetch to worker pool: %w", err)
			}
		}
	}

	wg.Wait()
	close(results)

	collected := make([]sourceResult, 0, len(batches)+1)
	leagueFailed := leagueRequested
	for res := range results {
		if res.err != nil {
			s.logger.WarnContext(ctx, "schedule source contributed nothing",
				"source", res.source,
				"err", res.err,
			)
			continue
		}
		if res.priority == 0 {
			leagueFailed = false
		}
		collected = append(collected, res)
	}

	if leagueFailed && len(collected) == 0 {
		return AggregateResult{}, fmt.Errorf("%w: every schedule source failed", ErrNoDataAvailable)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].priority < collected[j].priority
	})

	result := AggregateResult{}
	seen := make(map[string]bool)
	for _, res := range collected {
		result.SourcesUsed = append(result.SourcesUsed, res.source)
		for _, f := range res.fixtures {
			if seen[f.ID] {
				// First occurrence wins: the league source outranks
				// any cup source sharing the same fixture id.
				continue
			}
			seen[f.ID] = true
			if f.Competition == "" {
				if league, ok := competition.Get(competition.PremierLeague); ok {
					f.Competition = league.Label
				}
			}
			result.Fixtures = append(result.Fixtures, f)
		}
	}

	sort.SliceStable(result.Fixtures, func(i, j int) bool {
		return result.Fixtures[i].Date.Before(result.Fixtures[j].Date)
	})

	s.logger.InfoContext(ctx, "aggregated fixtures",
		"fixtures", len(result.Fixtures),
		"sources", result.SourcesUsed,
	)

	return result, nil
}

// fetchLeague tries the primary source and only then the fallback; the
// two are never raced.
func (s *AggregatorService) fetchLeague(ctx context.Context) sourceResult {
	league, _ := competition.Get(competition.PremierLeague)

	fixtures, err := s.callSource(ctx, sourceLeaguePrimary, func(ctx context.Context) ([]fixture.Fixture, error) {
		return s.primary.FetchLeagueFixtures(ctx)
	})
	source := sourceLeaguePrimary

	if err != nil && s.fallback != nil {
		s.logger.WarnContext(ctx, "primary league source failed, trying fallback", "err", err)
		fixtures, err = s.callSource(ctx, sourceLeagueFallback, func(ctx context.Context) ([]fixture.Fixture, error) {
			return s.fallback.FetchLeagueFixtures(ctx)
		})
		source = sourceLeagueFallback
	}
	if err != nil {
		return sourceResult{source: source, priority: 0, err: fmt.Errorf("%w: %v", ErrFetchFailed, err)}
	}

	// The league label is stamped over whatever the source provided;
	// sources disagree on competition naming just as they do on clubs.
	stamped := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		f.Competition = league.Label
		stamped = append(stamped, f)
	}

	return sourceResult{source: source, priority: 0, fixtures: stamped}
}

func (s *AggregatorService) callSource(
	ctx context.Context,
	name string,
	fn func(ctx context.Context) ([]fixture.Fixture, error),
) ([]fixture.Fixture, error) {
	breaker := s.breakerFor(name)
	if breaker != nil {
		if err := breaker.Allow(); err != nil {
			return nil, fmt.Errorf("%w: source=%s: %v", ErrFetchFailed, name, err)
		}
	}

	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	fixtures, err := fn(ctx)
	if breaker != nil {
		if err != nil {
			breaker.RecordFailure()
		} else {
			breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: source=%s: %v", ErrFetchFailed, name, err)
	}

	return fixtures, nil
}

func (s *AggregatorService) breakerFor(name string) *resilience.CircuitBreaker {
	if !s.cfg.CircuitBreaker.Enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.breakers[name]; ok {
		return b
	}
	b := resilience.NewCircuitBreaker(
		s.cfg.CircuitBreaker.FailureThreshold,
		s.cfg.CircuitBreaker.OpenTimeout,
		s.cfg.CircuitBreaker.HalfOpenMaxReq,
	)
	s.breakers[name] = b
	return b
}

// batchCupSources groups requested cups by schedule source so a page
// serving several cups is fetched once. Priority starts at 1; the
// league holds 0.
func batchCupSources(cups []competition.Competition) []sourceBatch {
	batches := make([]sourceBatch, 0, len(cups))
	seen := make(map[string]bool, len(cups))
	for _, c := range cups {
		if seen[c.ScheduleSource] {
			continue
		}
		seen[c.ScheduleSource] = true
		batches = append(batches, sourceBatch{
			source:   c.ScheduleSource,
			priority: len(batches) + 1,
		})
	}
	return batches
}
