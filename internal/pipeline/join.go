package pipeline

import (
	"log"
	"math"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// mirrorKey reconstructs game identity for records without a source game
// identifier: the mirror of a row is the record on the same date whose team
// is the row's opponent and whose opponent score equals the row's own score.
// Two different games on one date with identical scores collide; colliding
// keys are treated as unresolvable rather than matched arbitrarily.
type mirrorKey struct {
	date  time.Time
	team  string
	score int
}

// JoinStats counts join outcomes for one batch.
type JoinStats struct {
	Misses     int `json:"misses"`
	Ambiguous  int `json:"ambiguous"`
	Incomplete int `json:"incomplete"`
}

// JoinOpponents locates each row's mirror record and attaches the mirror's
// own rolling features under the opp_ namespace, then synthesizes the
// comparative features. Mirrors are matched by source game identifier when
// both sides carry one, falling back to (date, team, score-pair) identity.
// Rows without a usable mirror are dropped, counted, and logged; so are rows
// failing the comparative completeness gate.
func JoinOpponents(rows []store.RollingFeatureRow, logger *log.Logger) ([]store.JoinedGameRow, JoinStats) {
	if logger == nil {
		logger = log.New(log.Writer(), "[join] ", log.LstdFlags)
	}

	byGameID := make(map[string]map[string]int)
	byMirror := make(map[mirrorKey]int)
	ambiguous := make(map[mirrorKey]bool)

	for i := range rows {
		r := &rows[i]
		if r.GameID != "" {
			teams := byGameID[r.GameID]
			if teams == nil {
				teams = make(map[string]int)
				byGameID[r.GameID] = teams
			}
			teams[r.Team] = i
		}

		key := mirrorKey{date: r.GameDate, team: r.Team, score: r.OppScore}
		if _, dup := byMirror[key]; dup {
			ambiguous[key] = true
		} else {
			byMirror[key] = i
		}
	}

	var stats JoinStats
	joined := make([]store.JoinedGameRow, 0, len(rows))

	for i := range rows {
		r := &rows[i]

		mirror := findMirror(r, rows, byGameID, byMirror, ambiguous)
		if mirror == nil {
			stats.Misses++
			logger.Printf("no mirror record for %s vs %s on %s", r.Team, r.Opponent, r.GameDate.Format("2006-01-02"))
			continue
		}

		row := store.JoinedGameRow{
			RollingFeatureRow: *r,
			Opp:               opponentForm(mirror),
		}
		Synthesize(&row)

		if math.IsNaN(row.AvgScoreCompLast10) {
			stats.Incomplete++
			continue
		}

		joined = append(joined, row)
	}

	stats.Ambiguous = len(ambiguous)

	return joined, stats
}

func findMirror(r *store.RollingFeatureRow, rows []store.RollingFeatureRow,
	byGameID map[string]map[string]int, byMirror map[mirrorKey]int, ambiguous map[mirrorKey]bool) *store.RollingFeatureRow {

	if r.GameID != "" {
		if idx, ok := byGameID[r.GameID][r.Opponent]; ok {
			return &rows[idx]
		}
	}

	key := mirrorKey{date: r.GameDate, team: r.Opponent, score: r.TeamScore}
	if ambiguous[key] {
		return nil
	}
	idx, ok := byMirror[key]
	if !ok {
		return nil
	}

	mirror := &rows[idx]
	if mirror.Opponent != r.Team || mirror.TeamScore != r.OppScore {
		return nil
	}
	return mirror
}

// opponentForm snapshots the mirror's own pre-game form. These values come
// from the mirror's rolling pass, before any opponent adjustment of its own.
func opponentForm(m *store.RollingFeatureRow) store.OpponentForm {
	return store.OpponentForm{
		RestDays:      m.RestDays,
		WinPctLast10:  m.WinPctLast10,
		EFGPctLast5:   m.EFGPctLast5,
		EFGPctLast10:  m.EFGPctLast10,
		CumOffRtg:     m.CumOffRtg,
		CumDefRtg:     m.CumDefRtg,
		CumNetRtg:     m.CumNetRtg,
		HomeCumNetRtg: m.HomeCumNetRtg,
		AwayCumNetRtg: m.AwayCumNetRtg,
		HomeRoadSplit: m.HomeRoadSplit,

		AvgFTALast5:          m.AvgFTALast5,
		AvgFTALast10:         m.AvgFTALast10,
		AvgASTLast5:          m.AvgASTLast5,
		AvgASTLast10:         m.AvgASTLast10,
		AvgTRBLast5:          m.AvgTRBLast5,
		AvgTRBLast10:         m.AvgTRBLast10,
		AvgORBLast5:          m.AvgORBLast5,
		AvgORBLast10:         m.AvgORBLast10,
		AvgTOVLast5:          m.AvgTOVLast5,
		AvgTOVLast10:         m.AvgTOVLast10,
		AvgTeamScoreLast5:    m.AvgTeamScoreLast5,
		AvgTeamScoreLast10:   m.AvgTeamScoreLast10,
		AvgOppScoreLast5:     m.AvgOppScoreLast5,
		AvgOppScoreLast10:    m.AvgOppScoreLast10,
		AvgScoreDiffLast5:    m.AvgScoreDiffLast5,
		AvgScoreDiffLast10:   m.AvgScoreDiffLast10,
		AvgPossessionsLast5:  m.AvgPossessionsLast5,
		AvgPossessionsLast10: m.AvgPossessionsLast10,
	}
}
