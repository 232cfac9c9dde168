package pipeline

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

// testGame builds a completed home game with a plausible box line. Score and
// date vary per game; the rest stays fixed so window sums are easy to state.
func testGame(team string, d int, teamScore, oppScore int) store.GameRecord {
	result := store.ResultWin
	if teamScore < oppScore {
		result = store.ResultLoss
	}
	return store.GameRecord{
		Season:   2026,
		Team:     team,
		GameDate: day(d),
		Opponent: "Opponent",
		Location: store.LocationHome,
		Result:   result,

		TeamScore: teamScore,
		OppScore:  oppScore,

		FieldGoalsMade: 25, FieldGoalsAttempted: 60, ThreePointersMade: 8,
		FreeThrowsAttempted: 15, OffensiveRebounds: 10, DefensiveRebounds: 24,
		Rebounds: 34, Assists: 14, Turnovers: 12,

		OppFieldGoalsMade: 24, OppFieldGoalsAttempted: 58, OppFreeThrowsAttempted: 18,
		OppOffensiveRebounds: 11, OppDefensiveRebounds: 25, OppTurnovers: 13,
	}
}

func TestRollingFirstGameDefaults(t *testing.T) {
	rows := BuildRollingFeatures([]store.GameRecord{testGame("Duke", 5, 80, 70)}, 1)

	r := rows[0]
	if r.RestDays != defaultRestDays {
		t.Errorf("first game rest_days = %f, want %d", r.RestDays, defaultRestDays)
	}
	if r.CumNetRtg != 0 || r.CumOffRtg != 0 || r.CumDefRtg != 0 {
		t.Errorf("first game cumulative ratings should fill to 0, got off=%f def=%f net=%f",
			r.CumOffRtg, r.CumDefRtg, r.CumNetRtg)
	}
	if r.WinPctLast10 != 0 || r.AvgTeamScoreLast10 != 0 || r.EFGPctLast10 != 0 {
		t.Errorf("first game window features should fill to 0, got win_pct=%f avg_score=%f efg=%f",
			r.WinPctLast10, r.AvgTeamScoreLast10, r.EFGPctLast10)
	}
	if float64(r.Win) != 1 {
		t.Errorf("win = %f, want 1", float64(r.Win))
	}
}

func TestRollingCausality(t *testing.T) {
	games := []store.GameRecord{
		testGame("Duke", 1, 80, 70),
		testGame("Duke", 4, 75, 78),
		testGame("Duke", 8, 90, 60),
	}
	before := BuildRollingFeatures(games, 1)

	// Inflating the last game must not move any earlier row, nor the later
	// row's trailing features, which see only prior games.
	games[2].TeamScore = 150
	games[2].FieldGoalsMade = 55
	after := BuildRollingFeatures(games, 1)

	if !reflect.DeepEqual(before[0], after[0]) || !reflect.DeepEqual(before[1], after[1]) {
		t.Fatal("mutating a later game changed an earlier row")
	}
	if before[2].AvgTeamScoreLast10 != after[2].AvgTeamScoreLast10 ||
		before[2].CumNetRtg != after[2].CumNetRtg ||
		before[2].EFGPctLast10 != after[2].EFGPctLast10 {
		t.Error("a game's own box line leaked into its own trailing features")
	}
}

func TestRollingWindowShrinksAtSeasonStart(t *testing.T) {
	games := []store.GameRecord{
		testGame("Duke", 1, 60, 50),
		testGame("Duke", 3, 70, 50),
		testGame("Duke", 5, 80, 50),
		testGame("Duke", 7, 90, 50),
	}
	rows := BuildRollingFeatures(games, 1)

	// At game 3 the 5-game window holds only the 3 prior games.
	want := (60.0 + 70.0 + 80.0) / 3.0
	if !closeTo(rows[3].AvgTeamScoreLast5, want) {
		t.Errorf("avg_team_score_last_5 = %f, want %f", rows[3].AvgTeamScoreLast5, want)
	}
	if !closeTo(rows[1].AvgTeamScoreLast5, 60) {
		t.Errorf("avg_team_score_last_5 after one game = %f, want 60", rows[1].AvgTeamScoreLast5)
	}
}

func TestRollingWeightedEFG(t *testing.T) {
	g1 := testGame("Duke", 1, 80, 70)
	g1.FieldGoalsMade, g1.ThreePointersMade, g1.FieldGoalsAttempted = 30, 5, 70
	g2 := testGame("Duke", 3, 75, 70)
	g2.FieldGoalsMade, g2.ThreePointersMade, g2.FieldGoalsAttempted = 30, 10, 83
	g3 := testGame("Duke", 5, 70, 70)

	rows := BuildRollingFeatures([]store.GameRecord{g1, g2, g3}, 1)

	// Weighted, not a mean of per-game ratios: (60 + 0.5*15) / 153.
	want := 67.5 / 153.0
	if !closeTo(rows[2].EFGPctLast5, want) {
		t.Errorf("efg_pct_last_5 = %f, want %f", rows[2].EFGPctLast5, want)
	}
}

func TestRollingRestDays(t *testing.T) {
	games := []store.GameRecord{
		testGame("Duke", 1, 80, 70),
		testGame("Duke", 6, 75, 70),
	}
	rows := BuildRollingFeatures(games, 1)

	if rows[1].RestDays != 5 {
		t.Errorf("rest_days = %f, want 5", rows[1].RestDays)
	}
}

func TestRollingPendingGame(t *testing.T) {
	pending := store.GameRecord{
		Season: 2026, Team: "Duke", GameDate: day(10),
		Opponent: "Kansas", Location: store.LocationAway,
		Result: store.ResultPending,
	}
	games := []store.GameRecord{
		testGame("Duke", 1, 80, 70),
		testGame("Duke", 4, 75, 78),
		pending,
	}
	rows := BuildRollingFeatures(games, 1)

	r := rows[2]
	if !math.IsNaN(float64(r.Win)) {
		t.Errorf("pending game win = %f, want NaN", float64(r.Win))
	}
	if !math.IsNaN(float64(r.Possessions)) {
		t.Errorf("pending game possessions = %f, want NaN", float64(r.Possessions))
	}
	// Trailing features still come from the two played games.
	if !closeTo(r.WinPctLast10, 0.5) {
		t.Errorf("pending game win_pct_last_10 = %f, want 0.5", r.WinPctLast10)
	}
	if r.AvgTeamScoreLast10 != 77.5 {
		t.Errorf("pending game avg_team_score_last_10 = %f, want 77.5", r.AvgTeamScoreLast10)
	}
}

func TestRollingDeterministicAcrossWorkers(t *testing.T) {
	var games []store.GameRecord
	for _, team := range []string{"Duke", "Kansas", "Gonzaga", "Houston"} {
		for d := 1; d <= 12; d++ {
			games = append(games, testGame(team, d, 70+d, 65))
		}
	}

	serial := BuildRollingFeatures(games, 1)
	parallel := BuildRollingFeatures(games, 8)

	if !reflect.DeepEqual(serial, parallel) {
		t.Error("worker count changed the output")
	}
}
