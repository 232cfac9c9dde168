package pipeline

import (
	"math"
	"testing"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

func TestEstimatePossessions(t *testing.T) {
	g := &store.GameRecord{
		FieldGoalsMade:      20,
		FieldGoalsAttempted: 60,
		FreeThrowsAttempted: 15,
		OffensiveRebounds:   10,
		DefensiveRebounds:   24,
		Turnovers:           13,

		OppFieldGoalsMade:      24,
		OppFieldGoalsAttempted: 54,
		OppFreeThrowsAttempted: 20,
		OppOffensiveRebounds:   12,
		OppDefensiveRebounds:   30,
		OppTurnovers:           12,
	}

	team, opp, avg := EstimatePossessions(g)

	// team: 60 + 0.4*15 - 1.07*(10/40)*40 + 13 = 68.3
	// opp:  54 + 0.4*20 - 1.07*(12/36)*30 + 12 = 63.3
	if !closeTo(team, 68.3) {
		t.Errorf("team possessions = %f, want 68.3", team)
	}
	if !closeTo(opp, 63.3) {
		t.Errorf("opp possessions = %f, want 63.3", opp)
	}
	if !closeTo(avg, 65.8) {
		t.Errorf("avg possessions = %f, want 65.8", avg)
	}
}

func TestEstimatePossessionsTeamSideFormula(t *testing.T) {
	g := &store.GameRecord{
		FieldGoalsMade:      25,
		FieldGoalsAttempted: 60,
		FreeThrowsAttempted: 20,
		OffensiveRebounds:   10,
		Turnovers:           12,

		OppDefensiveRebounds: 30,
	}

	// 60 + 0.4*20 - 1.07*(10/40)*35 + 12 = 60 + 8 - 9.3625 + 12
	team, _, _ := EstimatePossessions(g)
	if !closeTo(team, 70.6375) {
		t.Errorf("team possessions = %f, want 70.6375", team)
	}
}

func TestEstimatePossessionsMirrorAgreement(t *testing.T) {
	g := &store.GameRecord{
		FieldGoalsMade: 28, FieldGoalsAttempted: 61, FreeThrowsAttempted: 18,
		OffensiveRebounds: 9, DefensiveRebounds: 26, Turnovers: 11,
		OppFieldGoalsMade: 25, OppFieldGoalsAttempted: 58, OppFreeThrowsAttempted: 22,
		OppOffensiveRebounds: 13, OppDefensiveRebounds: 22, OppTurnovers: 14,
	}

	// The mirror record swaps the two box lines.
	mirror := &store.GameRecord{
		FieldGoalsMade: 25, FieldGoalsAttempted: 58, FreeThrowsAttempted: 22,
		OffensiveRebounds: 13, DefensiveRebounds: 22, Turnovers: 14,
		OppFieldGoalsMade: 28, OppFieldGoalsAttempted: 61, OppFreeThrowsAttempted: 18,
		OppOffensiveRebounds: 9, OppDefensiveRebounds: 26, OppTurnovers: 11,
	}

	_, _, avg := EstimatePossessions(g)
	_, _, mirrorAvg := EstimatePossessions(mirror)

	if !closeTo(avg, mirrorAvg) {
		t.Errorf("mirror records disagree on pace: %f vs %f", avg, mirrorAvg)
	}
}

func TestEstimatePossessionsZeroRebounds(t *testing.T) {
	// A zero rebounding denominator on either side makes the estimate
	// undefined rather than panicking.
	g := &store.GameRecord{
		FieldGoalsAttempted:    50,
		OppFieldGoalsAttempted: 50,
	}

	team, opp, avg := EstimatePossessions(g)

	if !math.IsNaN(team) || !math.IsNaN(opp) || !math.IsNaN(avg) {
		t.Errorf("expected NaN for zero rebound denominators, got team=%f opp=%f avg=%f", team, opp, avg)
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
