package store

// RollingFeatureRow is a GameRecord augmented with pace and causal form
// features. Rolling and cumulative values at a game are computed only from the
// team's strictly earlier games in the same season; the contemporaneous
// ratings (off_rtg, def_rtg, net_rtg) describe the game itself and are kept
// out of the causal set.
type RollingFeatureRow struct {
	GameRecord

	Possessions     Stat `json:"possessions" db:"possessions"`
	TeamPossessions Stat `json:"team_possessions" db:"team_possessions"`
	OppPossessions  Stat `json:"opp_possessions_est" db:"opp_possessions_est"`

	IsHome    float64 `json:"is_home" db:"is_home"`
	ScoreDiff float64 `json:"score_diff" db:"score_diff"`
	Win       Stat    `json:"win" db:"win"`

	OffRtg Stat `json:"off_rtg" db:"off_rtg"`
	DefRtg Stat `json:"def_rtg" db:"def_rtg"`
	NetRtg Stat `json:"net_rtg" db:"net_rtg"`

	CumOffRtg     float64 `json:"cum_off_rtg" db:"cum_off_rtg"`
	CumDefRtg     float64 `json:"cum_def_rtg" db:"cum_def_rtg"`
	CumNetRtg     float64 `json:"cum_net_rtg" db:"cum_net_rtg"`
	HomeCumNetRtg float64 `json:"home_cum_net_rtg" db:"home_cum_net_rtg"`
	AwayCumNetRtg float64 `json:"away_cum_net_rtg" db:"away_cum_net_rtg"`
	HomeRoadSplit float64 `json:"home_road_split" db:"home_road_split"`

	WinPctLast10 float64 `json:"win_pct_last_10" db:"win_pct_last_10"`
	EFGPctLast5  float64 `json:"efg_pct_last_5" db:"efg_pct_last_5"`
	EFGPctLast10 float64 `json:"efg_pct_last_10" db:"efg_pct_last_10"`

	AvgFTALast5          float64 `json:"avg_fta_last_5" db:"avg_fta_last_5"`
	AvgFTALast10         float64 `json:"avg_fta_last_10" db:"avg_fta_last_10"`
	AvgASTLast5          float64 `json:"avg_ast_last_5" db:"avg_ast_last_5"`
	AvgASTLast10         float64 `json:"avg_ast_last_10" db:"avg_ast_last_10"`
	AvgTRBLast5          float64 `json:"avg_trb_last_5" db:"avg_trb_last_5"`
	AvgTRBLast10         float64 `json:"avg_trb_last_10" db:"avg_trb_last_10"`
	AvgORBLast5          float64 `json:"avg_orb_last_5" db:"avg_orb_last_5"`
	AvgORBLast10         float64 `json:"avg_orb_last_10" db:"avg_orb_last_10"`
	AvgTOVLast5          float64 `json:"avg_tov_last_5" db:"avg_tov_last_5"`
	AvgTOVLast10         float64 `json:"avg_tov_last_10" db:"avg_tov_last_10"`
	AvgTeamScoreLast5    float64 `json:"avg_team_score_last_5" db:"avg_team_score_last_5"`
	AvgTeamScoreLast10   float64 `json:"avg_team_score_last_10" db:"avg_team_score_last_10"`
	AvgOppScoreLast5     float64 `json:"avg_opp_score_last_5" db:"avg_opp_score_last_5"`
	AvgOppScoreLast10    float64 `json:"avg_opp_score_last_10" db:"avg_opp_score_last_10"`
	AvgScoreDiffLast5    float64 `json:"avg_score_diff_last_5" db:"avg_score_diff_last_5"`
	AvgScoreDiffLast10   float64 `json:"avg_score_diff_last_10" db:"avg_score_diff_last_10"`
	AvgPossessionsLast5  float64 `json:"avg_possessions_last_5" db:"avg_possessions_last_5"`
	AvgPossessionsLast10 float64 `json:"avg_possessions_last_10" db:"avg_possessions_last_10"`

	RestDays float64 `json:"rest_days" db:"rest_days"`
}

// OpponentForm is the mirror record's own pre-game form, attached by the
// opponent joiner under the opp_ column namespace. These are the opponent's
// rolling features as computed in its own partition, not opponent-adjusted.
type OpponentForm struct {
	RestDays      float64 `json:"opp_rest_days" db:"opp_rest_days"`
	WinPctLast10  float64 `json:"opp_win_pct_last_10" db:"opp_win_pct_last_10"`
	EFGPctLast5   float64 `json:"opp_efg_pct_last_5" db:"opp_efg_pct_last_5"`
	EFGPctLast10  float64 `json:"opp_efg_pct_last_10" db:"opp_efg_pct_last_10"`
	CumOffRtg     float64 `json:"opp_cum_off_rtg" db:"opp_cum_off_rtg"`
	CumDefRtg     float64 `json:"opp_cum_def_rtg" db:"opp_cum_def_rtg"`
	CumNetRtg     float64 `json:"opp_cum_net_rtg" db:"opp_cum_net_rtg"`
	HomeCumNetRtg float64 `json:"opp_home_cum_net_rtg" db:"opp_home_cum_net_rtg"`
	AwayCumNetRtg float64 `json:"opp_away_cum_net_rtg" db:"opp_away_cum_net_rtg"`
	HomeRoadSplit float64 `json:"opp_home_road_split" db:"opp_home_road_split"`

	AvgFTALast5          float64 `json:"opp_avg_fta_last_5" db:"opp_avg_fta_last_5"`
	AvgFTALast10         float64 `json:"opp_avg_fta_last_10" db:"opp_avg_fta_last_10"`
	AvgASTLast5          float64 `json:"opp_avg_ast_last_5" db:"opp_avg_ast_last_5"`
	AvgASTLast10         float64 `json:"opp_avg_ast_last_10" db:"opp_avg_ast_last_10"`
	AvgTRBLast5          float64 `json:"opp_avg_trb_last_5" db:"opp_avg_trb_last_5"`
	AvgTRBLast10         float64 `json:"opp_avg_trb_last_10" db:"opp_avg_trb_last_10"`
	AvgORBLast5          float64 `json:"opp_avg_orb_last_5" db:"opp_avg_orb_last_5"`
	AvgORBLast10         float64 `json:"opp_avg_orb_last_10" db:"opp_avg_orb_last_10"`
	AvgTOVLast5          float64 `json:"opp_avg_tov_last_5" db:"opp_avg_tov_last_5"`
	AvgTOVLast10         float64 `json:"opp_avg_tov_last_10" db:"opp_avg_tov_last_10"`
	AvgTeamScoreLast5    float64 `json:"opp_avg_team_score_last_5" db:"opp_avg_team_score_last_5"`
	AvgTeamScoreLast10   float64 `json:"opp_avg_team_score_last_10" db:"opp_avg_team_score_last_10"`
	AvgOppScoreLast5     float64 `json:"opp_avg_opp_score_last_5" db:"opp_avg_opp_score_last_5"`
	AvgOppScoreLast10    float64 `json:"opp_avg_opp_score_last_10" db:"opp_avg_opp_score_last_10"`
	AvgScoreDiffLast5    float64 `json:"opp_avg_score_diff_last_5" db:"opp_avg_score_diff_last_5"`
	AvgScoreDiffLast10   float64 `json:"opp_avg_score_diff_last_10" db:"opp_avg_score_diff_last_10"`
	AvgPossessionsLast5  float64 `json:"opp_avg_possessions_last_5" db:"opp_avg_possessions_last_5"`
	AvgPossessionsLast10 float64 `json:"opp_avg_possessions_last_10" db:"opp_avg_possessions_last_10"`
}

// JoinedGameRow pairs a team's rolling features with its opponent's for the
// same physical game, plus the signed comparative features. This is the
// terminal artifact consumed by model training and prediction.
type JoinedGameRow struct {
	RollingFeatureRow

	Opp OpponentForm `json:"opp"`

	AvgScoreCompLast10    float64 `json:"avg_score_comp_last_10" db:"avg_score_comp_last_10"`
	EFGCompLast10         float64 `json:"efg_comp_last_10" db:"efg_comp_last_10"`
	AvgTOVCompLast10      float64 `json:"avg_tov_comp_last_10" db:"avg_tov_comp_last_10"`
	AvgORBCompLast10      float64 `json:"avg_orb_comp_last_10" db:"avg_orb_comp_last_10"`
	AvgFTACompLast10      float64 `json:"avg_fta_comp_last_10" db:"avg_fta_comp_last_10"`
	RestDaysComp          float64 `json:"rest_days_comp" db:"rest_days_comp"`
	NetRtgComp            float64 `json:"net_rtg_comp" db:"net_rtg_comp"`
	HomeRoadSplitComp     float64 `json:"home_road_split_comp" db:"home_road_split_comp"`
	PaceMismatchSigned    float64 `json:"pace_mismatch_signed" db:"pace_mismatch_signed"`
	NetRtgHomeInteraction float64 `json:"net_rtg_home_interaction" db:"net_rtg_home_interaction"`
}

// FeatureColumns lists the numeric columns a Predictor may reference, in
// stable order. Feature resolves them by name; the two stay in sync.
func FeatureColumns() []string {
	return []string{
		"is_home",
		"rest_days",
		"win_pct_last_10",
		"efg_pct_last_5",
		"efg_pct_last_10",
		"cum_off_rtg",
		"cum_def_rtg",
		"cum_net_rtg",
		"home_cum_net_rtg",
		"away_cum_net_rtg",
		"home_road_split",
		"avg_fta_last_10",
		"avg_ast_last_10",
		"avg_trb_last_10",
		"avg_orb_last_10",
		"avg_tov_last_10",
		"avg_team_score_last_10",
		"avg_opp_score_last_10",
		"avg_score_diff_last_10",
		"avg_possessions_last_10",
		"opp_rest_days",
		"opp_win_pct_last_10",
		"opp_efg_pct_last_10",
		"opp_cum_net_rtg",
		"opp_home_road_split",
		"opp_avg_team_score_last_10",
		"opp_avg_tov_last_10",
		"opp_avg_orb_last_10",
		"opp_avg_fta_last_10",
		"opp_avg_possessions_last_10",
		"avg_score_comp_last_10",
		"efg_comp_last_10",
		"avg_tov_comp_last_10",
		"avg_orb_comp_last_10",
		"avg_fta_comp_last_10",
		"rest_days_comp",
		"net_rtg_comp",
		"home_road_split_comp",
		"pace_mismatch_signed",
		"net_rtg_home_interaction",
	}
}

// Feature returns the named numeric column value. The second return is false
// for unknown column names.
func (r *JoinedGameRow) Feature(name string) (float64, bool) {
	switch name {
	case "is_home":
		return r.IsHome, true
	case "rest_days":
		return r.RestDays, true
	case "win_pct_last_10":
		return r.WinPctLast10, true
	case "efg_pct_last_5":
		return r.EFGPctLast5, true
	case "efg_pct_last_10":
		return r.EFGPctLast10, true
	case "cum_off_rtg":
		return r.CumOffRtg, true
	case "cum_def_rtg":
		return r.CumDefRtg, true
	case "cum_net_rtg":
		return r.CumNetRtg, true
	case "home_cum_net_rtg":
		return r.HomeCumNetRtg, true
	case "away_cum_net_rtg":
		return r.AwayCumNetRtg, true
	case "home_road_split":
		return r.HomeRoadSplit, true
	case "avg_fta_last_10":
		return r.AvgFTALast10, true
	case "avg_ast_last_10":
		return r.AvgASTLast10, true
	case "avg_trb_last_10":
		return r.AvgTRBLast10, true
	case "avg_orb_last_10":
		return r.AvgORBLast10, true
	case "avg_tov_last_10":
		return r.AvgTOVLast10, true
	case "avg_team_score_last_10":
		return r.AvgTeamScoreLast10, true
	case "avg_opp_score_last_10":
		return r.AvgOppScoreLast10, true
	case "avg_score_diff_last_10":
		return r.AvgScoreDiffLast10, true
	case "avg_possessions_last_10":
		return r.AvgPossessionsLast10, true
	case "opp_rest_days":
		return r.Opp.RestDays, true
	case "opp_win_pct_last_10":
		return r.Opp.WinPctLast10, true
	case "opp_efg_pct_last_10":
		return r.Opp.EFGPctLast10, true
	case "opp_cum_net_rtg":
		return r.Opp.CumNetRtg, true
	case "opp_home_road_split":
		return r.Opp.HomeRoadSplit, true
	case "opp_avg_team_score_last_10":
		return r.Opp.AvgTeamScoreLast10, true
	case "opp_avg_tov_last_10":
		return r.Opp.AvgTOVLast10, true
	case "opp_avg_orb_last_10":
		return r.Opp.AvgORBLast10, true
	case "opp_avg_fta_last_10":
		return r.Opp.AvgFTALast10, true
	case "opp_avg_possessions_last_10":
		return r.Opp.AvgPossessionsLast10, true
	case "avg_score_comp_last_10":
		return r.AvgScoreCompLast10, true
	case "efg_comp_last_10":
		return r.EFGCompLast10, true
	case "avg_tov_comp_last_10":
		return r.AvgTOVCompLast10, true
	case "avg_orb_comp_last_10":
		return r.AvgORBCompLast10, true
	case "avg_fta_comp_last_10":
		return r.AvgFTACompLast10, true
	case "rest_days_comp":
		return r.RestDaysComp, true
	case "net_rtg_comp":
		return r.NetRtgComp, true
	case "home_road_split_comp":
		return r.HomeRoadSplitComp, true
	case "pace_mismatch_signed":
		return r.PaceMismatchSigned, true
	case "net_rtg_home_interaction":
		return r.NetRtgHomeInteraction, true
	}
	return 0, false
}
