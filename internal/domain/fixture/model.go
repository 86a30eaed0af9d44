package fixture

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
)

// Fixture is one scheduled or played match as reported by a source.
// Matchweek is only meaningful within a single competition; the
// normalizer may relabel it for not-yet-finished fixtures.
type Fixture struct {
	ID               string
	Competition      string
	CompetitionRound string
	HomeTeam         string
	AwayTeam         string
	Date             time.Time
	Matchweek        int
	HomeScore        *int
	AwayScore        *int
	Status           string
	IsDerby          bool
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

// HasResult reports whether both scores are present. Scores are both
// nil or both set; a half-filled pair is a source bug.
func (f Fixture) HasResult() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

func (f Fixture) IsFinished() bool {
	return IsFinishedStatus(f.Status)
}

// Validate checks the score invariant. A finished fixture must carry a
// full result; the reverse is tolerated because sources flip status
// late.
func (f Fixture) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.HomeTeam == "" || f.AwayTeam == "" {
		return fmt.Errorf("fixture %s: both team names are required", f.ID)
	}
	if (f.HomeScore == nil) != (f.AwayScore == nil) {
		return fmt.Errorf("fixture %s: scores must be both set or both absent", f.ID)
	}
	if f.IsFinished() && !f.HasResult() {
		return fmt.Errorf("fixture %s: finished without a result", f.ID)
	}
	return nil
}
