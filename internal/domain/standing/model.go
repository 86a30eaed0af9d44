package standing

// Standing is one club's league table row for a season. Form is
// whatever the source last reported and may be stale or empty; the
// form builder recomputes it from fixture history.
type Standing struct {
	Club           string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Form           string
}
