package usecase

import (
	"sort"

	"github.com/premtable/matchday/internal/domain/club"
	"github.com/premtable/matchday/internal/domain/fixture"
	"github.com/premtable/matchday/internal/domain/standing"
)

// formLength caps how many recent results make up a form string.
const formLength = 6

// BuildRecentForm derives each standings club's recent W/D/L sequence,
// most recent first, from fixture history. Stored form strings are
// never trusted; sources let them go stale and name clubs differently
// than the fixtures do, so every comparison routes through the
// identity resolver.
func BuildRecentForm(fixtures []fixture.Fixture, standings []standing.Standing) map[string]string {
	buckets := make(map[string][]byte, len(standings))
	order := make([]standing.Standing, 0, len(standings))
	for _, row := range standings {
		key := club.Resolve(row.Club)
		if _, ok := buckets[key]; ok {
			continue
		}
		buckets[key] = make([]byte, 0, formLength)
		order = append(order, row)
	}

	played := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.IsFinished() && f.HasResult() {
			played = append(played, f)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Date.After(played[j].Date)
	})

	// Walking newest-to-oldest means appends land most-recent-first.
	// The open counter lets the walk stop before scanning a whole
	// season once every bucket is full.
	open := len(buckets)
	for _, f := range played {
		if open == 0 {
			break
		}
		open -= record(buckets, club.Resolve(f.HomeTeam), sideResult(*f.HomeScore, *f.AwayScore))
		open -= record(buckets, club.Resolve(f.AwayTeam), sideResult(*f.AwayScore, *f.HomeScore))
	}

	out := make(map[string]string, len(order))
	for _, row := range order {
		out[row.Club] = string(buckets[club.Resolve(row.Club)])
	}
	return out
}

// record appends one result to the club's bucket and returns 1 when
// the bucket just reached capacity.
func record(buckets map[string][]byte, key string, result byte) int {
	bucket, ok := buckets[key]
	if !ok || len(bucket) >= formLength {
		return 0
	}
	bucket = append(bucket, result)
	buckets[key] = bucket
	if len(bucket) == formLength {
		return 1
	}
	return 0
}

func sideResult(own, other int) byte {
	switch {
	case own > other:
		return 'W'
	case own < other:
		return 'L'
	default:
		return 'D'
	}
}
