package postgres

import (
	"time"

	"github.com/premtable/matchday/internal/domain/standing"
)

type standingTableModel struct {
	Club           string    `db:"club"`
	Position       int       `db:"position"`
	Played         int       `db:"played"`
	Won            int       `db:"won"`
	Drawn          int       `db:"drawn"`
	Lost           int       `db:"lost"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	Points         int       `db:"points"`
	Form           string    `db:"form"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func toStandingTableModel(row standing.Standing, now time.Time) standingTableModel {
	return standingTableModel{
		Club:           row.Club,
		Position:       row.Position,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Form:           row.Form,
		UpdatedAt:      now,
	}
}

func (m standingTableModel) toDomain() standing.Standing {
	return standing.Standing{
		Club:           m.Club,
		Position:       m.Position,
		Played:         m.Played,
		Won:            m.Won,
		Drawn:          m.Drawn,
		Lost:           m.Lost,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		Points:         m.Points,
		Form:           m.Form,
	}
}
