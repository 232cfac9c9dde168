package store

import (
	"time"
)

// Location is where a game was played from the team's perspective.
type Location string

const (
	LocationHome    Location = "home"
	LocationAway    Location = "away"
	LocationNeutral Location = "neutral"
)

// Result is the outcome of a game from the team's perspective.
type Result string

const (
	ResultWin     Result = "W"
	ResultLoss    Result = "L"
	ResultPending Result = "pending"
)

// GameRecord is one team's perspective on one physical game. Every completed
// game appears twice in a season batch, once per team, with team/opponent and
// box lines swapped. A record carries both its own box line and the opponent's
// so pace can be estimated without consulting the mirror record.
type GameRecord struct {
	Season   int       `json:"season" db:"season"`
	Team     string    `json:"team" db:"team"`
	TeamSlug string    `json:"team_slug,omitempty" db:"team_slug"`
	GameID   string    `json:"game_id,omitempty" db:"game_id"`
	GameDate time.Time `json:"game_date" db:"game_date"`
	Opponent string    `json:"opponent" db:"opponent"`
	Location Location  `json:"location" db:"location"`
	Result   Result    `json:"result" db:"result"`

	FieldGoalsMade         int `json:"fg" db:"fg"`
	FieldGoalsAttempted    int `json:"fga" db:"fga"`
	ThreePointersMade      int `json:"fg3" db:"fg3"`
	ThreePointersAttempted int `json:"fg3a" db:"fg3a"`
	FreeThrowsMade         int `json:"ft" db:"ft"`
	FreeThrowsAttempted    int `json:"fta" db:"fta"`
	OffensiveRebounds      int `json:"orb" db:"orb"`
	DefensiveRebounds      int `json:"drb" db:"drb"`
	Rebounds               int `json:"trb" db:"trb"`
	Assists                int `json:"ast" db:"ast"`
	Steals                 int `json:"stl" db:"stl"`
	Blocks                 int `json:"blk" db:"blk"`
	Turnovers              int `json:"tov" db:"tov"`
	PersonalFouls          int `json:"pf" db:"pf"`
	TeamScore              int `json:"team_score" db:"team_score"`
	OppScore               int `json:"opp_score" db:"opp_score"`

	OppFieldGoalsMade         int `json:"opp_fg" db:"opp_fg"`
	OppFieldGoalsAttempted    int `json:"opp_fga" db:"opp_fga"`
	OppThreePointersMade      int `json:"opp_fg3" db:"opp_fg3"`
	OppThreePointersAttempted int `json:"opp_fg3a" db:"opp_fg3a"`
	OppFreeThrowsMade         int `json:"opp_ft" db:"opp_ft"`
	OppFreeThrowsAttempted    int `json:"opp_fta" db:"opp_fta"`
	OppOffensiveRebounds      int `json:"opp_orb" db:"opp_orb"`
	OppDefensiveRebounds      int `json:"opp_drb" db:"opp_drb"`
	OppRebounds               int `json:"opp_trb" db:"opp_trb"`
	OppAssists                int `json:"opp_ast" db:"opp_ast"`
	OppSteals                 int `json:"opp_stl" db:"opp_stl"`
	OppBlocks                 int `json:"opp_blk" db:"opp_blk"`
	OppTurnovers              int `json:"opp_tov" db:"opp_tov"`
	OppPersonalFouls          int `json:"opp_pf" db:"opp_pf"`
}

// Completed reports whether the game has been played.
func (g *GameRecord) Completed() bool {
	return g.Result == ResultWin || g.Result == ResultLoss
}

// Prediction is a predicted point margin for one feature row, from the team's
// perspective. Positive margins favor the team.
type Prediction struct {
	Season    int       `json:"season" db:"season"`
	GameDate  time.Time `json:"game_date" db:"game_date"`
	Team      string    `json:"team" db:"team"`
	Opponent  string    `json:"opponent" db:"opponent"`
	IsHome    float64   `json:"is_home" db:"is_home"`
	Margin    float64   `json:"predicted_margin" db:"predicted_margin"`
	ModelName string    `json:"model_name" db:"model_name"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}
