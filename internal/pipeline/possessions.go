package pipeline

import (
	"math"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// EstimatePossessions computes the pace estimate for one record:
//
//	poss = FGA + 0.4*FTA - 1.07*(ORB/(ORB+OppDRB))*(FGA-FG) + TOV
//
// applied to each side's own box line, with the attached estimate being the
// average of the two. Both mirror records of a game carry both box lines, so
// both sides derive the same value. A zero rebounding denominator makes the
// estimate undefined (NaN); it propagates as missing, never panics.
func EstimatePossessions(g *store.GameRecord) (team, opp, avg float64) {
	team = sidePossessions(
		g.FieldGoalsMade, g.FieldGoalsAttempted, g.FreeThrowsAttempted,
		g.OffensiveRebounds, g.Turnovers, g.OppDefensiveRebounds,
	)
	opp = sidePossessions(
		g.OppFieldGoalsMade, g.OppFieldGoalsAttempted, g.OppFreeThrowsAttempted,
		g.OppOffensiveRebounds, g.OppTurnovers, g.DefensiveRebounds,
	)
	return team, opp, 0.5 * (team + opp)
}

func sidePossessions(fg, fga, fta, orb, tov, oppDRB int) float64 {
	rebDenom := float64(orb + oppDRB)
	if rebDenom == 0 {
		return math.NaN()
	}
	orbRate := float64(orb) / rebDenom
	missedFG := float64(fga - fg)

	return float64(fga) + 0.4*float64(fta) - 1.07*orbRate*missedFG + float64(tov)
}
