package usecase

import (
	"sort"
	"time"

	"github.com/premtable/matchday/internal/domain/fixture"
)

// MatchweekConfig carries the two tunables of the matchweek
// heuristics. Both depend on league size and scheduling cadence, so
// they are configuration rather than constants: a 20-club league plays
// 10 fixtures a round and 8 finished is "mostly complete".
type MatchweekConfig struct {
	// CompletionThreshold is the number of finished fixtures a round
	// needs before it counts as the current round.
	CompletionThreshold int
	// RoundGap is the largest date distance between two consecutive
	// fixtures that still belong to the same round.
	RoundGap time.Duration
}

func DefaultMatchweekConfig() MatchweekConfig {
	return MatchweekConfig{
		CompletionThreshold: 8,
		RoundGap:            72 * time.Hour,
	}
}

func normalizeMatchweekConfig(cfg MatchweekConfig) MatchweekConfig {
	defaults := DefaultMatchweekConfig()
	if cfg.CompletionThreshold < 1 {
		cfg.CompletionThreshold = defaults.CompletionThreshold
	}
	if cfg.RoundGap <= 0 {
		cfg.RoundGap = defaults.RoundGap
	}
	return cfg
}

// DetectCurrentMatchweek infers which round is "now" from finished
// fixtures. Rounds do not complete atomically; taking the max finished
// matchweek naively would flip to the next round after one early
// kickoff, so the latest round only counts once enough of it is
// finished.
func DetectCurrentMatchweek(fixtures []fixture.Fixture, cfg MatchweekConfig) int {
	cfg = normalizeMatchweekConfig(cfg)

	maxWeek := 0
	finishedPerWeek := make(map[int]int)
	for _, f := range fixtures {
		if !f.IsFinished() {
			continue
		}
		finishedPerWeek[f.Matchweek]++
		if f.Matchweek > maxWeek {
			maxWeek = f.Matchweek
		}
	}
	if maxWeek == 0 {
		return 0
	}

	if finishedPerWeek[maxWeek] >= cfg.CompletionThreshold {
		return maxWeek
	}
	if maxWeek <= 1 {
		return 0
	}
	return maxWeek - 1
}

// NormalizeMatchweeks relabels not-yet-finished fixtures into
// contiguous matchweek buckets starting at the correct round, closing
// the gaps that postponements and interleaved cup ties leave behind.
// Finished fixtures are never touched, and no matchweek already at or
// past the computed start is ever decreased.
func NormalizeMatchweeks(fixtures []fixture.Fixture, currentMatchweek int, cfg MatchweekConfig) []fixture.Fixture {
	if currentMatchweek <= 0 {
		return fixtures
	}
	cfg = normalizeMatchweekConfig(cfg)

	upcoming := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if !f.IsFinished() {
			upcoming = append(upcoming, f)
		}
	}
	if len(upcoming) == 0 {
		return fixtures
	}

	// When the current round still has unplayed fixtures they keep its
	// number; otherwise the next upcoming round starts one above it.
	startWeek := currentMatchweek + 1
	for _, f := range upcoming {
		if f.Matchweek == currentMatchweek {
			startWeek = currentMatchweek
			break
		}
	}

	groupByID := groupByKickoffProximity(upcoming, cfg.RoundGap)

	out := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.IsFinished() {
			out = append(out, f)
			continue
		}
		if groupIdx, ok := groupByID[f.ID]; ok {
			if f.Matchweek < startWeek {
				f.Matchweek = startWeek + groupIdx
			}
			out = append(out, f)
			continue
		}
		// Grouping covers every upcoming fixture by construction, but
		// an ungrouped one below the start is still clamped up rather
		// than left pointing at an already-played round.
		if f.Matchweek < startWeek {
			f.Matchweek = startWeek
		}
		out = append(out, f)
	}

	return out
}

// groupByKickoffProximity clusters fixtures that are scheduled close
// together into the same logical round, regardless of the matchweek
// number a source originally assigned. A new group starts whenever the
// date gap to the previous fixture exceeds maxGap.
func groupByKickoffProximity(fixtures []fixture.Fixture, maxGap time.Duration) map[string]int {
	ordered := make([]fixture.Fixture, len(fixtures))
	copy(ordered, fixtures)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	groups := make(map[string]int, len(ordered))
	groupIdx := 0
	for i, f := range ordered {
		if i > 0 && f.Date.Sub(ordered[i-1].Date) > maxGap {
			groupIdx++
		}
		groups[f.ID] = groupIdx
	}
	return groups
}
