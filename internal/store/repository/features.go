package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// FeatureRepository persists the derived feature table. Feature rows are
// recomputed in full on every pipeline run, so writes replace whole seasons
// rather than patching individual rows.
type FeatureRepository struct {
	db *store.Database
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(db *store.Database) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// ReplaceSeasons atomically swaps the stored feature rows for every season
// present in the batch.
func (r *FeatureRepository) ReplaceSeasons(ctx context.Context, rows []store.JoinedGameRow) error {
	seasons := make(map[int]bool)
	for i := range rows {
		seasons[rows[i].Season] = true
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for season := range seasons {
		if _, err := tx.ExecContext(ctx, `DELETE FROM feature_rows WHERE season = $1`, season); err != nil {
			return fmt.Errorf("clearing feature rows for season %d: %w", season, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, insertFeatureRowQuery())
	if err != nil {
		return fmt.Errorf("preparing feature insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		row := &rows[i]
		args := []interface{}{
			row.Season, row.Team, row.GameDate, row.Opponent, string(row.Result),
			row.TeamScore, row.OppScore,
			row.Possessions, row.OffRtg, row.DefRtg, row.NetRtg,
		}
		for _, col := range store.FeatureColumns() {
			v, ok := row.Feature(col)
			if !ok {
				return fmt.Errorf("unknown feature column %q", col)
			}
			args = append(args, v)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting feature row %s/%s: %w", row.Team, row.GameDate.Format("2006-01-02"), err)
		}
	}

	return tx.Commit()
}

// CountBySeason returns the number of stored feature rows per season
func (r *FeatureRepository) CountBySeason(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT season, COUNT(*) FROM feature_rows GROUP BY season ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("counting feature rows: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var season, n int
		if err := rows.Scan(&season, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[season] = n
	}

	return counts, rows.Err()
}

// insertFeatureRowQuery builds the insert statement from the column registry,
// keeping it in lockstep with the migration DDL.
func insertFeatureRowQuery() string {
	cols := []string{
		"season", "team", "game_date", "opponent", "result",
		"team_score", "opp_score",
		"possessions", "off_rtg", "def_rtg", "net_rtg",
	}
	cols = append(cols, store.FeatureColumns()...)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(
		"INSERT INTO feature_rows (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
}
