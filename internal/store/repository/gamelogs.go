package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// GamelogRepository handles raw per-team gamelog persistence
type GamelogRepository struct {
	db *store.Database
}

// NewGamelogRepository creates a new gamelog repository
func NewGamelogRepository(db *store.Database) *GamelogRepository {
	return &GamelogRepository{db: db}
}

const gamelogColumns = `season, team, team_slug, game_id, game_date, opponent, location, result,
	fg, fga, fg3, fg3a, ft, fta, orb, drb, trb, ast, stl, blk, tov, pf,
	team_score, opp_score,
	opp_fg, opp_fga, opp_fg3, opp_fg3a, opp_ft, opp_fta, opp_orb, opp_drb, opp_trb,
	opp_ast, opp_stl, opp_blk, opp_tov, opp_pf`

// Upsert inserts or updates one game record keyed by (season, team, game_date)
func (r *GamelogRepository) Upsert(ctx context.Context, rec *store.GameRecord) error {
	query := `
		INSERT INTO gamelogs (` + gamelogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38)
		ON CONFLICT (season, team, game_date) DO UPDATE SET
			team_slug = EXCLUDED.team_slug,
			game_id = EXCLUDED.game_id,
			opponent = EXCLUDED.opponent,
			location = EXCLUDED.location,
			result = EXCLUDED.result,
			fg = EXCLUDED.fg, fga = EXCLUDED.fga, fg3 = EXCLUDED.fg3, fg3a = EXCLUDED.fg3a,
			ft = EXCLUDED.ft, fta = EXCLUDED.fta,
			orb = EXCLUDED.orb, drb = EXCLUDED.drb, trb = EXCLUDED.trb,
			ast = EXCLUDED.ast, stl = EXCLUDED.stl, blk = EXCLUDED.blk,
			tov = EXCLUDED.tov, pf = EXCLUDED.pf,
			team_score = EXCLUDED.team_score, opp_score = EXCLUDED.opp_score,
			opp_fg = EXCLUDED.opp_fg, opp_fga = EXCLUDED.opp_fga,
			opp_fg3 = EXCLUDED.opp_fg3, opp_fg3a = EXCLUDED.opp_fg3a,
			opp_ft = EXCLUDED.opp_ft, opp_fta = EXCLUDED.opp_fta,
			opp_orb = EXCLUDED.opp_orb, opp_drb = EXCLUDED.opp_drb, opp_trb = EXCLUDED.opp_trb,
			opp_ast = EXCLUDED.opp_ast, opp_stl = EXCLUDED.opp_stl, opp_blk = EXCLUDED.opp_blk,
			opp_tov = EXCLUDED.opp_tov, opp_pf = EXCLUDED.opp_pf,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		rec.Season, rec.Team, rec.TeamSlug, rec.GameID, rec.GameDate, rec.Opponent, rec.Location, rec.Result,
		rec.FieldGoalsMade, rec.FieldGoalsAttempted, rec.ThreePointersMade, rec.ThreePointersAttempted,
		rec.FreeThrowsMade, rec.FreeThrowsAttempted, rec.OffensiveRebounds, rec.DefensiveRebounds,
		rec.Rebounds, rec.Assists, rec.Steals, rec.Blocks, rec.Turnovers, rec.PersonalFouls,
		rec.TeamScore, rec.OppScore,
		rec.OppFieldGoalsMade, rec.OppFieldGoalsAttempted, rec.OppThreePointersMade, rec.OppThreePointersAttempted,
		rec.OppFreeThrowsMade, rec.OppFreeThrowsAttempted, rec.OppOffensiveRebounds, rec.OppDefensiveRebounds,
		rec.OppRebounds, rec.OppAssists, rec.OppSteals, rec.OppBlocks, rec.OppTurnovers, rec.OppPersonalFouls,
	)
	if err != nil {
		return fmt.Errorf("upserting gamelog: %w", err)
	}

	return nil
}

// ReplaceTeamSeason swaps out a team's rows for a season with a fresh scrape
func (r *GamelogRepository) ReplaceTeamSeason(ctx context.Context, season int, team string, recs []store.GameRecord) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gamelogs WHERE season = $1 AND team = $2`, season, team); err != nil {
		return fmt.Errorf("clearing team season: %w", err)
	}

	for i := range recs {
		rec := &recs[i]
		if err := upsertTx(ctx, tx, rec); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func upsertTx(ctx context.Context, tx *sql.Tx, rec *store.GameRecord) error {
	query := `
		INSERT INTO gamelogs (` + gamelogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38)
		ON CONFLICT (season, team, game_date) DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query,
		rec.Season, rec.Team, rec.TeamSlug, rec.GameID, rec.GameDate, rec.Opponent, rec.Location, rec.Result,
		rec.FieldGoalsMade, rec.FieldGoalsAttempted, rec.ThreePointersMade, rec.ThreePointersAttempted,
		rec.FreeThrowsMade, rec.FreeThrowsAttempted, rec.OffensiveRebounds, rec.DefensiveRebounds,
		rec.Rebounds, rec.Assists, rec.Steals, rec.Blocks, rec.Turnovers, rec.PersonalFouls,
		rec.TeamScore, rec.OppScore,
		rec.OppFieldGoalsMade, rec.OppFieldGoalsAttempted, rec.OppThreePointersMade, rec.OppThreePointersAttempted,
		rec.OppFreeThrowsMade, rec.OppFreeThrowsAttempted, rec.OppOffensiveRebounds, rec.OppDefensiveRebounds,
		rec.OppRebounds, rec.OppAssists, rec.OppSteals, rec.OppBlocks, rec.OppTurnovers, rec.OppPersonalFouls,
	)
	if err != nil {
		return fmt.Errorf("inserting gamelog: %w", err)
	}
	return nil
}

// ListBySeason returns every record for a season ordered by team then date
func (r *GamelogRepository) ListBySeason(ctx context.Context, season int) ([]store.GameRecord, error) {
	query := `
		SELECT ` + gamelogColumns + `
		FROM gamelogs
		WHERE season = $1
		ORDER BY team, game_date
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying season gamelogs: %w", err)
	}
	defer rows.Close()

	return scanGameRecords(rows)
}

// ListAll returns every stored record ordered by season, team, date
func (r *GamelogRepository) ListAll(ctx context.Context) ([]store.GameRecord, error) {
	query := `
		SELECT ` + gamelogColumns + `
		FROM gamelogs
		ORDER BY season, team, game_date
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying gamelogs: %w", err)
	}
	defer rows.Close()

	return scanGameRecords(rows)
}

// ListSeasons returns the distinct seasons present, ascending
func (r *GamelogRepository) ListSeasons(ctx context.Context) ([]int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT DISTINCT season FROM gamelogs ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		seasons = append(seasons, s)
	}

	return seasons, rows.Err()
}

// ListTeams returns the canonical team names for a season with their slugs
func (r *GamelogRepository) ListTeams(ctx context.Context, season int) (map[string]string, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT DISTINCT team, team_slug FROM gamelogs WHERE season = $1 ORDER BY team`, season)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	teams := make(map[string]string)
	for rows.Next() {
		var team, slug string
		if err := rows.Scan(&team, &slug); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams[team] = slug
	}

	return teams, rows.Err()
}

// ListTeamsPlayingOn returns slug->team for teams with a game on the date
func (r *GamelogRepository) ListTeamsPlayingOn(ctx context.Context, season int, date time.Time) (map[string]string, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT DISTINCT team_slug, team FROM gamelogs WHERE season = $1 AND game_date = $2 AND team_slug <> ''`,
		season, date)
	if err != nil {
		return nil, fmt.Errorf("querying teams by date: %w", err)
	}
	defer rows.Close()

	teams := make(map[string]string)
	for rows.Next() {
		var slug, team string
		if err := rows.Scan(&slug, &team); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams[slug] = team
	}

	return teams, rows.Err()
}

// scanGameRecords scans multiple gamelog rows
func scanGameRecords(rows *sql.Rows) ([]store.GameRecord, error) {
	var records []store.GameRecord
	for rows.Next() {
		var rec store.GameRecord
		err := rows.Scan(
			&rec.Season, &rec.Team, &rec.TeamSlug, &rec.GameID, &rec.GameDate, &rec.Opponent, &rec.Location, &rec.Result,
			&rec.FieldGoalsMade, &rec.FieldGoalsAttempted, &rec.ThreePointersMade, &rec.ThreePointersAttempted,
			&rec.FreeThrowsMade, &rec.FreeThrowsAttempted, &rec.OffensiveRebounds, &rec.DefensiveRebounds,
			&rec.Rebounds, &rec.Assists, &rec.Steals, &rec.Blocks, &rec.Turnovers, &rec.PersonalFouls,
			&rec.TeamScore, &rec.OppScore,
			&rec.OppFieldGoalsMade, &rec.OppFieldGoalsAttempted, &rec.OppThreePointersMade, &rec.OppThreePointersAttempted,
			&rec.OppFreeThrowsMade, &rec.OppFreeThrowsAttempted, &rec.OppOffensiveRebounds, &rec.OppDefensiveRebounds,
			&rec.OppRebounds, &rec.OppAssists, &rec.OppSteals, &rec.OppBlocks, &rec.OppTurnovers, &rec.OppPersonalFouls,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning gamelog: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
