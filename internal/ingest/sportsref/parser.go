package sportsref

import (
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/MavJames/ncaab-modeling-code/internal/normalize"
)

// School is one program row from the season index page.
type School struct {
	Name string
	Slug string
}

// ParseSchoolIndex extracts every program and its URL slug from a season's
// school stats page.
func ParseSchoolIndex(doc *goquery.Document) ([]School, error) {
	var schools []School

	doc.Find("table#basic_school_stats tbody tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td[data-stat='school_name']")
		link := cell.Find("a")
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		// href looks like /cbb/schools/duke/men/2026.html
		parts := strings.Split(strings.Trim(href, "/"), "/")
		if len(parts) < 3 {
			return
		}

		schools = append(schools, School{
			Name: strings.TrimSpace(link.Text()),
			Slug: parts[2],
		})
	})

	if len(schools) == 0 {
		return nil, fmt.Errorf("no schools found in index page")
	}
	return schools, nil
}

// ParseGamelog extracts one team's raw gamelog rows from its per-game log
// page. Cell text is kept verbatim; the normalizer owns all parsing. The box
// score link in the date cell, when present, becomes the record's shared game
// identifier.
func ParseGamelog(doc *goquery.Document, season int, school School) []normalize.RawGameRecord {
	var rows []normalize.RawGameRecord

	doc.Find("table#team_game_log tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") || row.HasClass("spacer") {
			return
		}

		stats := make(map[string]string)
		gameID := ""

		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			name, ok := cell.Attr("data-stat")
			if !ok {
				return
			}
			stats[name] = strings.TrimSpace(cell.Text())

			if name == "date" {
				if href, ok := cell.Find("a").Attr("href"); ok {
					gameID = boxscoreID(href)
				}
			}
		})

		if stats["date"] == "" {
			return
		}

		rows = append(rows, normalize.RawGameRecord{
			Season:     season,
			SchoolName: school.Name,
			SchoolSlug: school.Slug,
			GameID:     gameID,
			Stats:      stats,
		})
	})

	return rows
}

// boxscoreID reduces a box score href like
// /cbb/boxscores/2026-01-10-19-duke.html to its stable stem.
func boxscoreID(href string) string {
	base := path.Base(href)
	return strings.TrimSuffix(base, ".html")
}
