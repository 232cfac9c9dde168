package store

import (
	"fmt"
	"strings"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{"001_create_gamelogs.sql", createGamelogs},
	{"002_create_feature_rows.sql", createFeatureRows()},
	{"003_create_predictions.sql", createPredictions},
}

const createGamelogs = `
CREATE TABLE IF NOT EXISTS gamelogs (
	season      INT NOT NULL,
	team        TEXT NOT NULL,
	team_slug   TEXT NOT NULL DEFAULT '',
	game_id     TEXT NOT NULL DEFAULT '',
	game_date   DATE NOT NULL,
	opponent    TEXT NOT NULL,
	location    TEXT NOT NULL,
	result      TEXT NOT NULL,
	fg INT NOT NULL, fga INT NOT NULL, fg3 INT NOT NULL, fg3a INT NOT NULL,
	ft INT NOT NULL, fta INT NOT NULL,
	orb INT NOT NULL, drb INT NOT NULL, trb INT NOT NULL,
	ast INT NOT NULL, stl INT NOT NULL, blk INT NOT NULL,
	tov INT NOT NULL, pf INT NOT NULL,
	team_score INT NOT NULL, opp_score INT NOT NULL,
	opp_fg INT NOT NULL, opp_fga INT NOT NULL, opp_fg3 INT NOT NULL, opp_fg3a INT NOT NULL,
	opp_ft INT NOT NULL, opp_fta INT NOT NULL,
	opp_orb INT NOT NULL, opp_drb INT NOT NULL, opp_trb INT NOT NULL,
	opp_ast INT NOT NULL, opp_stl INT NOT NULL, opp_blk INT NOT NULL,
	opp_tov INT NOT NULL, opp_pf INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (season, team, game_date)
);
CREATE INDEX IF NOT EXISTS idx_gamelogs_date ON gamelogs (game_date);
CREATE INDEX IF NOT EXISTS idx_gamelogs_opponent ON gamelogs (season, opponent);
`

const createPredictions = `
CREATE TABLE IF NOT EXISTS predictions (
	season           INT NOT NULL,
	game_date        DATE NOT NULL,
	team             TEXT NOT NULL,
	opponent         TEXT NOT NULL,
	is_home          DOUBLE PRECISION NOT NULL,
	predicted_margin DOUBLE PRECISION NOT NULL,
	model_name       TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (season, game_date, team, opponent, model_name)
);
`

// createFeatureRows derives the feature table DDL from the column registry so
// the stored schema cannot drift from what Feature resolves.
func createFeatureRows() string {
	var b strings.Builder
	b.WriteString(`
CREATE TABLE IF NOT EXISTS feature_rows (
	season     INT NOT NULL,
	team       TEXT NOT NULL,
	game_date  DATE NOT NULL,
	opponent   TEXT NOT NULL,
	result     TEXT NOT NULL,
	team_score INT NOT NULL,
	opp_score  INT NOT NULL,
	possessions DOUBLE PRECISION,
	off_rtg DOUBLE PRECISION,
	def_rtg DOUBLE PRECISION,
	net_rtg DOUBLE PRECISION,
`)
	for _, col := range FeatureColumns() {
		fmt.Fprintf(&b, "\t%s DOUBLE PRECISION NOT NULL,\n", col)
	}
	b.WriteString(`	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (season, team, game_date)
);
CREATE INDEX IF NOT EXISTS idx_feature_rows_date ON feature_rows (game_date);
`)
	return b.String()
}
