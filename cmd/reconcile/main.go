// Command reconcile runs the schedule reconciliation pipeline once:
// it reads the scraper's source documents, merges and renumbers the
// fixtures, rebuilds form, and prints the resulting snapshot as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/premtable/matchday/external/filesource"
	"github.com/premtable/matchday/internal/config"
	"github.com/premtable/matchday/internal/domain/competition"
	"github.com/premtable/matchday/internal/domain/fixture"
	"github.com/premtable/matchday/internal/domain/standing"
	"github.com/premtable/matchday/internal/infrastructure/repository/memory"
	"github.com/premtable/matchday/internal/infrastructure/repository/postgres"
	"github.com/premtable/matchday/internal/platform/cache"
	"github.com/premtable/matchday/internal/platform/logging"
	"github.com/premtable/matchday/internal/platform/resilience"
	"github.com/premtable/matchday/internal/usecase"
)

type snapshotOutput struct {
	CurrentMatchweek int               `json:"currentMatchweek"`
	SourcesUsed      []string          `json:"sourcesUsed"`
	Degraded         bool              `json:"degraded"`
	Form             map[string]string `json:"form,omitempty"`
	Fixtures         json.RawMessage   `json:"fixtures"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("reconcile failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := filesource.NewClient(filesource.ClientConfig{
		FS:     os.DirFS(cfg.SourceDir),
		Logger: logger,
	})

	league, _ := competition.Get(competition.PremierLeague)
	primary := filesource.NewLeagueSource(client, league.ScheduleSource)
	fallback := filesource.NewLeagueSource(client, league.ScheduleSource+"-alt")

	aggregator := usecase.NewAggregatorService(primary, fallback, client, usecase.AggregatorConfig{
		FetchTimeout:         cfg.FetchTimeout,
		MaxConcurrentFetches: cfg.MaxConcurrentFetches,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SourceCircuitEnabled,
			FailureThreshold: cfg.SourceCircuitFailureCount,
			OpenTimeout:      cfg.SourceCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMaxReq,
		},
	}, logger)

	fixtureRepo, standingRepo, err := buildRepositories(cfg)
	if err != nil {
		return err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL, time.Now)
	}

	service := usecase.NewScheduleService(aggregator, fixtureRepo, standingRepo, store, usecase.MatchweekConfig{
		CompletionThreshold: cfg.MatchweekCompletionThreshold,
		RoundGap:            cfg.MatchweekRoundGap,
	}, logger)

	selected, err := parseSelection(os.Args[1:])
	if err != nil {
		return err
	}

	snapshot, err := service.Refresh(ctx, selected)
	if err != nil {
		return err
	}

	return printSnapshot(snapshot)
}

func buildRepositories(cfg config.Config) (fixture.Repository, standing.Repository, error) {
	if cfg.DBURL == "" {
		return memory.NewFixtureRepository(nil), memory.NewStandingRepository(nil), nil
	}

	db, err := postgres.Open(cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewFixtureRepository(db), postgres.NewStandingRepository(db), nil
}

// parseSelection turns CLI args into a competition set; no args means
// everything in scope.
func parseSelection(args []string) (map[competition.ID]bool, error) {
	selected := make(map[competition.ID]bool)
	if len(args) == 0 {
		for _, c := range competition.All() {
			selected[c.ID] = true
		}
		return selected, nil
	}

	for _, arg := range args {
		id := competition.ID(arg)
		if _, ok := competition.Get(id); !ok {
			return nil, fmt.Errorf("unknown competition %q", arg)
		}
		selected[id] = true
	}
	return selected, nil
}

func printSnapshot(snapshot usecase.Snapshot) error {
	encoded, err := fixture.EncodeSnapshot(snapshot.Fixtures, time.Now())
	if err != nil {
		return err
	}

	out, err := sonic.MarshalIndent(snapshotOutput{
		CurrentMatchweek: snapshot.CurrentMatchweek,
		SourcesUsed:      snapshot.SourcesUsed,
		Degraded:         snapshot.Degraded,
		Form:             snapshot.Form,
		Fixtures:         encoded,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot output: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
