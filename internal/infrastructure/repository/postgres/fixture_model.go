package postgres

import (
	"database/sql"
	"time"

	"github.com/premtable/matchday/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID               string        `db:"id"`
	Competition      string        `db:"competition"`
	CompetitionRound string        `db:"competition_round"`
	HomeTeam         string        `db:"home_team"`
	AwayTeam         string        `db:"away_team"`
	Date             time.Time     `db:"date"`
	Matchweek        int           `db:"matchweek"`
	HomeScore        sql.NullInt64 `db:"home_score"`
	AwayScore        sql.NullInt64 `db:"away_score"`
	Status           string        `db:"status"`
	IsDerby          bool          `db:"is_derby"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

func toFixtureTableModel(f fixture.Fixture, now time.Time) fixtureTableModel {
	return fixtureTableModel{
		ID:               f.ID,
		Competition:      f.Competition,
		CompetitionRound: f.CompetitionRound,
		HomeTeam:         f.HomeTeam,
		AwayTeam:         f.AwayTeam,
		Date:             f.Date,
		Matchweek:        f.Matchweek,
		HomeScore:        intPtrToNullInt64(f.HomeScore),
		AwayScore:        intPtrToNullInt64(f.AwayScore),
		Status:           f.Status,
		IsDerby:          f.IsDerby,
		UpdatedAt:        now,
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:               m.ID,
		Competition:      m.Competition,
		CompetitionRound: m.CompetitionRound,
		HomeTeam:         m.HomeTeam,
		AwayTeam:         m.AwayTeam,
		Date:             m.Date,
		Matchweek:        m.Matchweek,
		HomeScore:        nullInt64ToIntPtr(m.HomeScore),
		AwayScore:        nullInt64ToIntPtr(m.AwayScore),
		Status:           m.Status,
		IsDerby:          m.IsDerby,
	}
}

func intPtrToNullInt64(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}
