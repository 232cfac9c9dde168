package sportsref

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const schoolIndexHTML = `
<html><body>
<table id="basic_school_stats"><tbody>
<tr><td data-stat="school_name"><a href="/cbb/schools/duke/men/2026.html">Duke</a></td></tr>
<tr><td data-stat="school_name"><a href="/cbb/schools/kansas/men/2026.html">Kansas</a></td></tr>
<tr class="thead"><td data-stat="school_name">School</td></tr>
</tbody></table>
</body></html>`

const gamelogHTML = `
<html><body>
<table id="team_game_log"><tbody>
<tr class="thead"><td data-stat="date">Date</td></tr>
<tr>
  <td data-stat="date"><a href="/cbb/boxscores/2026-01-10-19-duke.html">2026-01-10</a></td>
  <td data-stat="game_location">@</td>
  <td data-stat="opp_name_abbr">Kansas</td>
  <td data-stat="team_game_result">W</td>
  <td data-stat="team_game_score">80</td>
  <td data-stat="opp_team_game_score">72</td>
  <td data-stat="fg">28</td>
</tr>
<tr>
  <td data-stat="date">2026-01-14</td>
  <td data-stat="game_location"></td>
  <td data-stat="opp_name_abbr">Gonzaga</td>
  <td data-stat="team_game_result"></td>
</tr>
<tr class="spacer"><td data-stat="date"></td></tr>
<tr>
  <td data-stat="date"></td>
  <td data-stat="opp_name_abbr"></td>
</tr>
</tbody></table>
</body></html>`

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return d
}

func TestParseSchoolIndex(t *testing.T) {
	schools, err := ParseSchoolIndex(doc(t, schoolIndexHTML))
	if err != nil {
		t.Fatalf("ParseSchoolIndex: %v", err)
	}

	if len(schools) != 2 {
		t.Fatalf("schools = %d, want 2", len(schools))
	}
	if schools[0].Name != "Duke" || schools[0].Slug != "duke" {
		t.Errorf("schools[0] = %+v, want Duke/duke", schools[0])
	}
	if schools[1].Slug != "kansas" {
		t.Errorf("schools[1].Slug = %q, want kansas", schools[1].Slug)
	}
}

func TestParseSchoolIndexEmpty(t *testing.T) {
	if _, err := ParseSchoolIndex(doc(t, "<html><body></body></html>")); err == nil {
		t.Error("expected error for page without a school table")
	}
}

func TestParseGamelog(t *testing.T) {
	school := School{Name: "Duke", Slug: "duke"}
	rows := ParseGamelog(doc(t, gamelogHTML), 2026, school)

	// Header, spacer, and dateless rows are skipped.
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.Season != 2026 || first.SchoolName != "Duke" || first.SchoolSlug != "duke" {
		t.Errorf("row identity = %+v", first)
	}
	if first.GameID != "2026-01-10-19-duke" {
		t.Errorf("game id = %q, want boxscore stem", first.GameID)
	}
	if first.Stat("opp_name_abbr") != "Kansas" || first.Stat("team_game_score") != "80" {
		t.Errorf("cell text not captured verbatim: %+v", first.Stats)
	}
	if first.Stat("game_location") != "@" {
		t.Errorf("game_location = %q, want @", first.Stat("game_location"))
	}

	// The unplayed row has no boxscore link and a blank result.
	pending := rows[1]
	if pending.GameID != "" {
		t.Errorf("pending game id = %q, want empty", pending.GameID)
	}
	if pending.Stat("team_game_result") != "" {
		t.Errorf("pending result = %q, want blank", pending.Stat("team_game_result"))
	}
}
