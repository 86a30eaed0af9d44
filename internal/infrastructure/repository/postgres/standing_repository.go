package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/premtable/matchday/internal/domain/standing"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) List(ctx context.Context) ([]standing.Standing, error) {
	const query = `
		SELECT club, position, played, won, drawn, lost,
		       goals_for, goals_against, goal_difference, points, form, updated_at
		FROM standings
		ORDER BY position, club`

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingRepository) ReplaceAll(ctx context.Context, rows []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace standings: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM standings`); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	const insert = `
		INSERT INTO standings (
			club, position, played, won, drawn, lost,
			goals_for, goals_against, goal_difference, points, form, updated_at
		) VALUES (
			:club, :position, :played, :won, :drawn, :lost,
			:goals_for, :goals_against, :goal_difference, :points, :form, :updated_at
		)`

	now := time.Now().UTC()
	for _, row := range rows {
		if _, err := tx.NamedExecContext(ctx, insert, toStandingTableModel(row, now)); err != nil {
			return fmt.Errorf("insert standing for %s: %w", row.Club, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings: %w", err)
	}
	return nil
}
