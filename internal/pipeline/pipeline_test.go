package pipeline

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// gamePair builds both sides of one completed game with consistent box lines.
func gamePair(home, away string, d int, homeScore, awayScore int) []store.GameRecord {
	gameID := fmt.Sprintf("2026-01-%02d-%s", d, home)

	h := testGame(home, d, homeScore, awayScore)
	h.Opponent = away
	h.GameID = gameID
	if homeScore < awayScore {
		h.Result = store.ResultLoss
	}

	a := store.GameRecord{
		Season:   2026,
		Team:     away,
		GameID:   gameID,
		GameDate: day(d),
		Opponent: home,
		Location: store.LocationAway,
		Result:   store.ResultWin,

		TeamScore: awayScore,
		OppScore:  homeScore,

		FieldGoalsMade: h.OppFieldGoalsMade, FieldGoalsAttempted: h.OppFieldGoalsAttempted,
		FreeThrowsAttempted: h.OppFreeThrowsAttempted, OffensiveRebounds: h.OppOffensiveRebounds,
		DefensiveRebounds: h.OppDefensiveRebounds, Turnovers: h.OppTurnovers,

		OppFieldGoalsMade: h.FieldGoalsMade, OppFieldGoalsAttempted: h.FieldGoalsAttempted,
		OppFreeThrowsAttempted: h.FreeThrowsAttempted, OppOffensiveRebounds: h.OffensiveRebounds,
		OppDefensiveRebounds: h.DefensiveRebounds, OppTurnovers: h.Turnovers,
	}
	if awayScore < homeScore {
		a.Result = store.ResultLoss
	}

	return []store.GameRecord{h, a}
}

func leagueRecords() []store.GameRecord {
	var records []store.GameRecord
	records = append(records, gamePair("Duke", "Kansas", 2, 80, 72)...)
	records = append(records, gamePair("Gonzaga", "Houston", 2, 68, 75)...)
	records = append(records, gamePair("Kansas", "Gonzaga", 6, 81, 79)...)
	records = append(records, gamePair("Houston", "Duke", 6, 70, 77)...)
	records = append(records, gamePair("Duke", "Gonzaga", 11, 85, 83)...)
	records = append(records, gamePair("Kansas", "Houston", 11, 64, 71)...)
	return records
}

func testPipeline() *Pipeline {
	return New(nil, Config{Workers: 4}, quietLogger())
}

func TestPipelineIdempotent(t *testing.T) {
	p := testPipeline()
	records := leagueRecords()

	first := p.RunRecords(records)
	second := p.RunRecords(records)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs over the same records diverged")
	}
	if first.Stats.OutputRows != len(records) {
		t.Errorf("output rows = %d, want %d", first.Stats.OutputRows, len(records))
	}
	if first.Stats.JoinMisses != 0 {
		t.Errorf("join misses = %d, want 0", first.Stats.JoinMisses)
	}
}

func TestPipelineInputOrderIrrelevant(t *testing.T) {
	p := testPipeline()
	records := leagueRecords()

	canonical := p.RunRecords(records)

	shuffled := make([]store.GameRecord, len(records))
	copy(shuffled, records)
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got := p.RunRecords(shuffled)

	if !reflect.DeepEqual(canonical.Rows, got.Rows) {
		t.Error("input order changed the output rows")
	}
}

func TestPipelinePartitionCount(t *testing.T) {
	p := testPipeline()
	result := p.RunRecords(leagueRecords())

	// Four teams, one season.
	if result.Stats.Partitions != 4 {
		t.Errorf("partitions = %d, want 4", result.Stats.Partitions)
	}
}
