package pipeline

import "github.com/MavJames/ncaab-modeling-code/internal/store"

// Synthesize fills the signed comparative features on a joined row. Each is
// team-minus-opponent over the same form window, so the mirror row carries the
// exact negation. The interaction term scales the net-rating edge by venue:
// full weight at home, half at a neutral site, zero on the road.
func Synthesize(row *store.JoinedGameRow) {
	row.AvgScoreCompLast10 = row.AvgTeamScoreLast10 - row.Opp.AvgTeamScoreLast10
	row.EFGCompLast10 = row.EFGPctLast10 - row.Opp.EFGPctLast10
	row.AvgTOVCompLast10 = row.AvgTOVLast10 - row.Opp.AvgTOVLast10
	row.AvgORBCompLast10 = row.AvgORBLast10 - row.Opp.AvgORBLast10
	row.AvgFTACompLast10 = row.AvgFTALast10 - row.Opp.AvgFTALast10
	row.RestDaysComp = row.RestDays - row.Opp.RestDays
	row.NetRtgComp = row.CumNetRtg - row.Opp.CumNetRtg
	row.HomeRoadSplitComp = row.HomeRoadSplit - row.Opp.HomeRoadSplit
	row.PaceMismatchSigned = row.AvgPossessionsLast10 - row.Opp.AvgPossessionsLast10
	row.NetRtgHomeInteraction = row.NetRtgComp * row.IsHome
}
