package usecase

import (
	"testing"
	"time"

	"github.com/premtable/matchday/internal/domain/fixture"
	"github.com/premtable/matchday/internal/domain/standing"
)

func resultFixture(id, home, away string, homeScore, awayScore int, date time.Time) fixture.Fixture {
	h, a := homeScore, awayScore
	return fixture.Fixture{
		ID:        id,
		HomeTeam:  home,
		AwayTeam:  away,
		Date:      date,
		HomeScore: &h,
		AwayScore: &a,
		Status:    fixture.StatusFinished,
	}
}

func TestBuildRecentForm_CapsAtSixMostRecent(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	fixtures := make([]fixture.Fixture, 0, 8)
	for i := 0; i < 8; i++ {
		// Chelsea wins the first seven, loses the most recent one.
		homeScore := 2
		awayScore := 0
		if i == 7 {
			homeScore, awayScore = 0, 1
		}
		fixtures = append(fixtures, resultFixture(
			"fx"+itoa(i), "Chelsea", "Opponent "+itoa(i),
			homeScore, awayScore, base.AddDate(0, 0, i*7),
		))
	}

	form := BuildRecentForm(fixtures, []standing.Standing{{Club: "Chelsea"}})

	if got := form["Chelsea"]; got != "LWWWWW" {
		t.Fatalf("form = %q, want LWWWWW", got)
	}
}

func TestBuildRecentForm_EmptyForNewClub(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		resultFixture("fx1", "Arsenal", "Chelsea", 1, 1, base),
	}

	form := BuildRecentForm(fixtures, []standing.Standing{
		{Club: "Arsenal"},
		{Club: "Newly Promoted Town"},
	})

	if got := form["Arsenal"]; got != "D" {
		t.Fatalf("Arsenal form = %q, want D", got)
	}
	if got := form["Newly Promoted Town"]; got != "" {
		t.Fatalf("new club form = %q, want empty", got)
	}
}

func TestBuildRecentForm_MostRecentFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		resultFixture("d1", "Everton", "Fulham", 3, 0, base),
		resultFixture("d2", "Fulham", "Everton", 2, 2, base.AddDate(0, 0, 7)),
		resultFixture("d3", "Everton", "Brentford", 0, 1, base.AddDate(0, 0, 14)),
	}

	form := BuildRecentForm(fixtures, []standing.Standing{{Club: "Everton"}})

	if got := form["Everton"]; got != "LDW" {
		t.Fatalf("form = %q, want LDW (most recent first)", got)
	}
}

func TestBuildRecentForm_ResolvesNameMismatches(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	// Fixtures name the club "Arsenal FC"; the standings row says
	// "Arsenal". The resolver has to bridge the two.
	fixtures := []fixture.Fixture{
		resultFixture("d1", "Arsenal FC", "Burnley", 2, 0, base),
		resultFixture("d2", "Brentford", "Arsenal FC", 1, 1, base.AddDate(0, 0, 4)),
		resultFixture("d3", "Arsenal FC", "Spurs", 0, 2, base.AddDate(0, 0, 8)),
	}

	form := BuildRecentForm(fixtures, []standing.Standing{
		{Club: "Arsenal"},
		{Club: "Tottenham Hotspur"},
	})

	if got := form["Arsenal"]; got != "LDW" {
		t.Fatalf("Arsenal form = %q, want LDW", got)
	}
	if got := form["Tottenham Hotspur"]; got != "W" {
		t.Fatalf("Spurs form = %q, want W", got)
	}
}

func TestBuildRecentForm_IgnoresUnfinishedAndScorelessFixtures(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	win := resultFixture("d1", "Villa", "Wolves", 1, 0, base)
	upcoming := fixture.Fixture{
		ID:       "d2",
		HomeTeam: "Villa",
		AwayTeam: "Fulham",
		Date:     base.AddDate(0, 0, 7),
		Status:   fixture.StatusScheduled,
	}

	form := BuildRecentForm([]fixture.Fixture{win, upcoming}, []standing.Standing{{Club: "Aston Villa"}})

	if got := form["Aston Villa"]; got != "W" {
		t.Fatalf("form = %q, want W", got)
	}
}
