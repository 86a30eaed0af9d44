package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/premtable/matchday/internal/domain/fixture"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	const query = `
		SELECT id, competition, competition_round, home_team, away_team,
		       date, matchweek, home_score, away_score, status, is_derby, updated_at
		FROM fixtures
		ORDER BY date, id`

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceAll swaps the stored fixture list for the reconciled one in a
// single transaction so readers never observe a half-written schedule.
func (r *FixtureRepository) ReplaceAll(ctx context.Context, fixtures []fixture.Fixture) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace fixtures: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fixtures`); err != nil {
		return fmt.Errorf("clear fixtures: %w", err)
	}

	const insert = `
		INSERT INTO fixtures (
			id, competition, competition_round, home_team, away_team,
			date, matchweek, home_score, away_score, status, is_derby, updated_at
		) VALUES (
			:id, :competition, :competition_round, :home_team, :away_team,
			:date, :matchweek, :home_score, :away_score, :status, :is_derby, :updated_at
		)`

	now := time.Now().UTC()
	for _, f := range fixtures {
		if _, err := tx.NamedExecContext(ctx, insert, toFixtureTableModel(f, now)); err != nil {
			return fmt.Errorf("insert fixture %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace fixtures: %w", err)
	}
	return nil
}
