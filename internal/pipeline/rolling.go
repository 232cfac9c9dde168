package pipeline

import (
	"math"
	"sync"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// Rolling window sizes for trailing form features.
const (
	shortWindow = 5
	longWindow  = 10
)

// defaultRestDays is assumed for a team's first game of a season.
const defaultRestDays = 7

// BuildRollingFeatures computes pace and causal form features for records
// sorted by (season, team, date). Every rolling or cumulative value at game i
// is derived only from games at index < i within the same (season, team)
// partition; the game's own outcome never leaks into its own features.
//
// Partitions are mutually independent and are processed by up to `workers`
// goroutines; each writes its own slice range, so output order matches input
// order regardless of scheduling.
func BuildRollingFeatures(records []store.GameRecord, workers int) []store.RollingFeatureRow {
	rows := make([]store.RollingFeatureRow, len(records))
	if len(records) == 0 {
		return rows
	}
	if workers < 1 {
		workers = 1
	}

	type span struct{ start, end int }
	var spans []span
	for start := 0; start < len(records); {
		end := start
		for end < len(records) &&
			records[end].Season == records[start].Season &&
			records[end].Team == records[start].Team {
			end++
		}
		spans = append(spans, span{start, end})
		start = end
	}

	work := make(chan span)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sp := range work {
				buildPartition(records[sp.start:sp.end], rows[sp.start:sp.end])
			}
		}()
	}
	for _, sp := range spans {
		work <- sp
	}
	close(work)
	wg.Wait()

	return rows
}

// buildPartition fills out for one (season, team) group, rows date-ascending.
func buildPartition(records []store.GameRecord, out []store.RollingFeatureRow) {
	for i := range records {
		row := &out[i]
		row.GameRecord = records[i]

		team, opp, avg := EstimatePossessions(&records[i])
		row.TeamPossessions = store.Stat(team)
		row.OppPossessions = store.Stat(opp)
		row.Possessions = store.Stat(avg)

		switch records[i].Location {
		case store.LocationHome:
			row.IsHome = 1
		case store.LocationNeutral:
			row.IsHome = 0.5
		default:
			row.IsHome = 0
		}

		row.ScoreDiff = float64(records[i].TeamScore - records[i].OppScore)

		switch records[i].Result {
		case store.ResultWin:
			row.Win = 1
		case store.ResultLoss:
			row.Win = 0
		default:
			row.Win = store.Stat(math.NaN())
		}

		// Contemporaneous per-100-possession ratings. Descriptive only:
		// they include the game's own outcome and are never part of the
		// causal feature set.
		row.OffRtg = store.Stat(rating(float64(records[i].TeamScore), avg))
		row.DefRtg = store.Stat(rating(float64(records[i].OppScore), avg))
		row.NetRtg = row.OffRtg - row.DefRtg
	}

	for i := range out {
		prior := out[:i]
		row := &out[i]

		row.CumOffRtg, row.CumDefRtg, row.CumNetRtg = cumulativeRatings(prior, nil)
		_, _, row.HomeCumNetRtg = cumulativeRatings(prior, func(r *store.RollingFeatureRow) bool { return r.IsHome == 1 })
		_, _, row.AwayCumNetRtg = cumulativeRatings(prior, func(r *store.RollingFeatureRow) bool { return r.IsHome == 0 })
		row.HomeRoadSplit = row.HomeCumNetRtg - row.AwayCumNetRtg

		row.WinPctLast10 = windowMean(prior, longWindow, func(r *store.RollingFeatureRow) float64 { return float64(r.Win) })

		row.EFGPctLast5 = windowEFG(prior, shortWindow)
		row.EFGPctLast10 = windowEFG(prior, longWindow)

		row.AvgFTALast5 = windowMean(prior, shortWindow, fta)
		row.AvgFTALast10 = windowMean(prior, longWindow, fta)
		row.AvgASTLast5 = windowMean(prior, shortWindow, ast)
		row.AvgASTLast10 = windowMean(prior, longWindow, ast)
		row.AvgTRBLast5 = windowMean(prior, shortWindow, trb)
		row.AvgTRBLast10 = windowMean(prior, longWindow, trb)
		row.AvgORBLast5 = windowMean(prior, shortWindow, orb)
		row.AvgORBLast10 = windowMean(prior, longWindow, orb)
		row.AvgTOVLast5 = windowMean(prior, shortWindow, tov)
		row.AvgTOVLast10 = windowMean(prior, longWindow, tov)
		row.AvgTeamScoreLast5 = windowMean(prior, shortWindow, teamScore)
		row.AvgTeamScoreLast10 = windowMean(prior, longWindow, teamScore)
		row.AvgOppScoreLast5 = windowMean(prior, shortWindow, oppScore)
		row.AvgOppScoreLast10 = windowMean(prior, longWindow, oppScore)
		row.AvgScoreDiffLast5 = windowMean(prior, shortWindow, scoreDiff)
		row.AvgScoreDiffLast10 = windowMean(prior, longWindow, scoreDiff)
		row.AvgPossessionsLast5 = windowMean(prior, shortWindow, possessions)
		row.AvgPossessionsLast10 = windowMean(prior, longWindow, possessions)

		if i == 0 {
			row.RestDays = defaultRestDays
		} else {
			row.RestDays = out[i].GameDate.Sub(out[i-1].GameDate).Hours() / 24
		}
	}
}

// rating is points per 100 possessions; undefined for missing or zero pace.
func rating(points, possessions float64) float64 {
	if math.IsNaN(possessions) || possessions == 0 {
		return math.NaN()
	}
	return 100 * points / possessions
}

// cumulativeRatings sums points and possessions over the prior rows passed
// through the filter (nil means all) and returns per-100 offensive,
// defensive, and net ratings, each filled to 0 when no prior possessions
// exist. Undefined pace estimates contribute nothing to the denominator.
func cumulativeRatings(prior []store.RollingFeatureRow, include func(*store.RollingFeatureRow) bool) (off, def, net float64) {
	var pts, oppPts, poss float64
	for i := range prior {
		r := &prior[i]
		if include != nil && !include(r) {
			continue
		}
		pts += float64(r.TeamScore)
		oppPts += float64(r.OppScore)
		if r.Possessions.Valid() {
			poss += float64(r.Possessions)
		}
	}

	if poss <= 0 {
		return 0, 0, 0
	}
	off = 100 * pts / poss
	def = 100 * oppPts / poss
	return off, def, off - def
}

// windowMean is the mean of f over the up-to-n most recent prior rows,
// skipping undefined values, filled to 0 when no defined value exists. The
// window shrinks at the start of a partition; it never pads.
func windowMean(prior []store.RollingFeatureRow, n int, f func(*store.RollingFeatureRow) float64) float64 {
	start := len(prior) - n
	if start < 0 {
		start = 0
	}

	var sum float64
	var count int
	for i := start; i < len(prior); i++ {
		v := f(&prior[i])
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// windowEFG is the weighted effective field-goal percentage over the up-to-n
// most recent prior games: summed makes over summed attempts, not a mean of
// per-game ratios. Filled to 0 when no attempts exist in the window.
func windowEFG(prior []store.RollingFeatureRow, n int) float64 {
	start := len(prior) - n
	if start < 0 {
		start = 0
	}

	var fg, fg3, fga float64
	for i := start; i < len(prior); i++ {
		fg += float64(prior[i].FieldGoalsMade)
		fg3 += float64(prior[i].ThreePointersMade)
		fga += float64(prior[i].FieldGoalsAttempted)
	}

	if fga == 0 {
		return 0
	}
	return (fg + 0.5*fg3) / fga
}

func fta(r *store.RollingFeatureRow) float64         { return float64(r.FreeThrowsAttempted) }
func ast(r *store.RollingFeatureRow) float64         { return float64(r.Assists) }
func trb(r *store.RollingFeatureRow) float64         { return float64(r.Rebounds) }
func orb(r *store.RollingFeatureRow) float64         { return float64(r.OffensiveRebounds) }
func tov(r *store.RollingFeatureRow) float64         { return float64(r.Turnovers) }
func teamScore(r *store.RollingFeatureRow) float64   { return float64(r.TeamScore) }
func oppScore(r *store.RollingFeatureRow) float64    { return float64(r.OppScore) }
func scoreDiff(r *store.RollingFeatureRow) float64   { return r.ScoreDiff }
func possessions(r *store.RollingFeatureRow) float64 { return float64(r.Possessions) }
