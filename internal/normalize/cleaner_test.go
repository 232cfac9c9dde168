package normalize

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

func testNormalizer(aliases AliasTable) *Normalizer {
	return NewNormalizer(aliases, log.New(io.Discard, "", 0))
}

// rawRow builds a complete raw gamelog row. Completed rows carry a full box
// line; a blank result means unplayed and clears the numeric cells.
func rawRow(school, date, opp, location, result string) RawGameRecord {
	stats := map[string]string{
		"date":             date,
		"game_location":    location,
		"opp_name_abbr":    opp,
		"team_game_result": result,
	}

	if result != "" {
		stats["team_game_score"] = "80"
		stats["opp_team_game_score"] = "72"
		for _, name := range []string{
			"fg", "fga", "fg3", "fg3a", "ft", "fta", "orb", "drb", "trb",
			"ast", "stl", "blk", "tov", "pf",
		} {
			stats[name] = "10"
			stats["opp_"+name] = "9"
		}
	}

	return RawGameRecord{
		Season:     2026,
		SchoolName: school,
		SchoolSlug: "slug-" + school,
		Stats:      stats,
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Duke NCAA", "Duke"},
		{"  Kansas  ", "Kansas"},
		{"Texas–Rio Grande Valley", "Texas-Rio Grande Valley"},
		{"Texas A&Mâ€“Commerce", "Texas A&M-Commerce"},
		{"Illinois—Chicago", "Illinois-Chicago"},
		{"Gonzaga", "Gonzaga"},
	}

	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanResolvesAliases(t *testing.T) {
	n := testNormalizer(AliasTable{"Ole Miss": "Mississippi"})

	raw := []RawGameRecord{
		rawRow("Duke", "2026-01-05", "Ole Miss", "", "W"),
		rawRow("Mississippi", "2026-01-05", "Duke", "@", "L"),
	}

	records, stats, err := n.Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if stats.CleanRows != 2 {
		t.Fatalf("clean rows = %d, want 2", stats.CleanRows)
	}
	if records[0].Opponent != "Mississippi" {
		t.Errorf("opponent = %q, want alias-resolved %q", records[0].Opponent, "Mississippi")
	}
}

func TestCleanDropsUnparseableRows(t *testing.T) {
	n := testNormalizer(nil)

	bad := rawRow("Duke", "not-a-date", "Kansas", "", "W")
	badStat := rawRow("Kansas", "2026-01-05", "Duke", "@", "L")
	badStat.Stats["fga"] = "forty"

	raw := []RawGameRecord{
		rawRow("Duke", "2026-01-05", "Kansas", "", "W"),
		rawRow("Kansas", "2026-01-05", "Duke", "@", "L"),
		bad,
		badStat,
	}

	records, stats, err := n.Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if stats.DroppedParse != 2 {
		t.Errorf("dropped_parse = %d, want 2", stats.DroppedParse)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestCleanDropsUnknownOpponents(t *testing.T) {
	n := testNormalizer(nil)

	raw := []RawGameRecord{
		rawRow("Duke", "2026-01-05", "Kansas", "", "W"),
		rawRow("Kansas", "2026-01-05", "Duke", "@", "L"),
		// Non-D1 exhibition opponent with no rows of its own.
		rawRow("Duke", "2026-01-08", "Division III College", "", "W"),
	}

	records, stats, err := n.Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if stats.DroppedUnknownOpponent != 1 {
		t.Errorf("dropped_unknown_opponent = %d, want 1", stats.DroppedUnknownOpponent)
	}
	for _, rec := range records {
		if rec.Opponent == "Division III College" {
			t.Error("unknown opponent row survived")
		}
	}
}

func TestCleanEmptyBatch(t *testing.T) {
	n := testNormalizer(nil)

	_, _, err := n.Clean([]RawGameRecord{rawRow("Duke", "garbage", "Kansas", "", "W")})
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("err = %v, want ErrEmptyBatch", err)
	}
}

func TestCleanLocationAndResult(t *testing.T) {
	n := testNormalizer(nil)

	raw := []RawGameRecord{
		rawRow("Duke", "2026-01-05", "Kansas", "N", "W"),
		rawRow("Kansas", "2026-01-05", "Duke", "N", "L"),
	}

	records, _, err := n.Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if records[0].Location != store.LocationNeutral {
		t.Errorf("location = %q, want neutral", records[0].Location)
	}
	if records[0].Result != store.ResultWin || records[1].Result != store.ResultLoss {
		t.Errorf("results = %q/%q, want W/L", records[0].Result, records[1].Result)
	}
}

func TestParseKeepsOnePendingRow(t *testing.T) {
	n := testNormalizer(nil)

	raw := []RawGameRecord{
		rawRow("Duke", "2026-01-02", "Kansas", "", "W"),
		rawRow("Duke", "2026-01-05", "Gonzaga", "@", ""),
		rawRow("Duke", "2026-01-08", "Houston", "", ""),
	}

	records, stats := n.Parse(raw)

	if stats.DroppedExtraPending != 1 {
		t.Errorf("dropped_extra_pending = %d, want 1", stats.DroppedExtraPending)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	last := records[len(records)-1]
	if last.Result != store.ResultPending || last.Opponent != "Gonzaga" {
		t.Errorf("kept pending row = %q vs %q, want pending vs Gonzaga", last.Result, last.Opponent)
	}
	if last.TeamScore != 0 || last.FieldGoalsAttempted != 0 {
		t.Error("pending row should carry zero stats")
	}
}

func TestParseDropsStalePendingRows(t *testing.T) {
	n := testNormalizer(nil)

	// A postponed game leaves a pending row dated before the last completed
	// game; it is stale and must not survive.
	raw := []RawGameRecord{
		rawRow("Duke", "2026-01-02", "Kansas", "", ""),
		rawRow("Duke", "2026-01-05", "Gonzaga", "", "W"),
	}

	records, stats := n.Parse(raw)

	if stats.DroppedExtraPending != 1 {
		t.Errorf("dropped_extra_pending = %d, want 1", stats.DroppedExtraPending)
	}
	if len(records) != 1 || records[0].Opponent != "Gonzaga" {
		t.Errorf("expected only the completed game to survive, got %d rows", len(records))
	}
}
