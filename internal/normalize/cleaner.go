package normalize

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// ErrEmptyBatch is returned when normalization leaves zero valid rows.
// Row-level problems are dropped and counted; an empty result is fatal.
var ErrEmptyBatch = errors.New("no valid gamelog rows after normalization")

const dateLayout = "2006-01-02"

// CleanStats counts what happened to a batch during normalization.
type CleanStats struct {
	RawRows                int `json:"raw_rows"`
	CleanRows              int `json:"clean_rows"`
	DroppedParse           int `json:"dropped_parse"`
	DroppedUnknownOpponent int `json:"dropped_unknown_opponent"`
	DroppedExtraPending    int `json:"dropped_extra_pending"`
}

// Normalizer cleans raw gamelog rows into canonical GameRecords.
type Normalizer struct {
	aliases AliasTable
	logger  *log.Logger
}

// NewNormalizer creates a normalizer with the given alias table.
func NewNormalizer(aliases AliasTable, logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.New(log.Writer(), "[normalize] ", log.LstdFlags)
	}
	return &Normalizer{aliases: aliases, logger: logger}
}

// Clean parses, canonicalizes, and filters a raw batch. Rows that fail
// parsing are dropped; rows whose opponent does not resolve to a team present
// in the batch are dropped to protect the downstream join; each (season, team)
// keeps at most one pending row, the next unplayed game after its last
// completed one. The result is sorted by (season, team, date).
func (n *Normalizer) Clean(raw []RawGameRecord) ([]store.GameRecord, CleanStats, error) {
	parsed, stats := n.Parse(raw)

	// Opponents must resolve to a team we actually have records for,
	// otherwise the mirror join can never complete.
	valid := make(map[string]bool)
	for i := range parsed {
		valid[parsed[i].Team] = true
	}

	records := parsed[:0]
	for i := range parsed {
		if !valid[parsed[i].Opponent] {
			stats.DroppedUnknownOpponent++
			continue
		}
		records = append(records, parsed[i])
	}

	stats.CleanRows = len(records)
	if stats.CleanRows == 0 {
		return nil, stats, fmt.Errorf("%w (raw rows: %d)", ErrEmptyBatch, stats.RawRows)
	}

	return records, stats, nil
}

// Parse parses and orders a raw batch without the batch-level opponent
// filter. Incremental per-team updates use this directly, since a single
// team's batch never contains its opponents' own rows.
func (n *Normalizer) Parse(raw []RawGameRecord) ([]store.GameRecord, CleanStats) {
	stats := CleanStats{RawRows: len(raw)}

	parsed := make([]store.GameRecord, 0, len(raw))
	for i := range raw {
		rec, err := n.parseRecord(&raw[i])
		if err != nil {
			stats.DroppedParse++
			n.logger.Printf("dropping row %s/%d: %v", raw[i].SchoolName, raw[i].Season, err)
			continue
		}
		parsed = append(parsed, rec)
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		a, b := &parsed[i], &parsed[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		return a.GameDate.Before(b.GameDate)
	})

	parsed, droppedPending := keepUpcomingSingletons(parsed)
	stats.DroppedExtraPending = droppedPending
	stats.CleanRows = len(parsed)

	return parsed, stats
}

// parseRecord converts one raw row. Completed rows require every box-score
// field to parse; pending rows carry zero stats until played.
func (n *Normalizer) parseRecord(raw *RawGameRecord) (store.GameRecord, error) {
	rec := store.GameRecord{
		Season:   raw.Season,
		Team:     CleanName(raw.SchoolName),
		TeamSlug: raw.SchoolSlug,
		GameID:   raw.GameID,
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(raw.Stat("date")))
	if err != nil {
		return rec, fmt.Errorf("unparseable date %q: %w", raw.Stat("date"), err)
	}
	rec.GameDate = date.UTC()

	rec.Opponent = n.aliases.Canonical(CleanName(raw.Stat("opp_name_abbr")))
	if rec.Opponent == "" {
		return rec, errors.New("missing opponent name")
	}

	switch strings.TrimSpace(raw.Stat("game_location")) {
	case "":
		rec.Location = store.LocationHome
	case "@":
		rec.Location = store.LocationAway
	case "N":
		rec.Location = store.LocationNeutral
	default:
		return rec, fmt.Errorf("unknown game location %q", raw.Stat("game_location"))
	}

	switch strings.TrimSpace(raw.Stat("team_game_result")) {
	case "W":
		rec.Result = store.ResultWin
	case "L":
		rec.Result = store.ResultLoss
	case "":
		// Unplayed game: no box score yet.
		rec.Result = store.ResultPending
		return rec, nil
	default:
		return rec, fmt.Errorf("unknown result %q", raw.Stat("team_game_result"))
	}

	p := &intParser{raw: raw}
	rec.TeamScore = p.field("team_game_score")
	rec.OppScore = p.field("opp_team_game_score")
	rec.FieldGoalsMade = p.field("fg")
	rec.FieldGoalsAttempted = p.field("fga")
	rec.ThreePointersMade = p.field("fg3")
	rec.ThreePointersAttempted = p.field("fg3a")
	rec.FreeThrowsMade = p.field("ft")
	rec.FreeThrowsAttempted = p.field("fta")
	rec.OffensiveRebounds = p.field("orb")
	rec.DefensiveRebounds = p.field("drb")
	rec.Rebounds = p.field("trb")
	rec.Assists = p.field("ast")
	rec.Steals = p.field("stl")
	rec.Blocks = p.field("blk")
	rec.Turnovers = p.field("tov")
	rec.PersonalFouls = p.field("pf")
	rec.OppFieldGoalsMade = p.field("opp_fg")
	rec.OppFieldGoalsAttempted = p.field("opp_fga")
	rec.OppThreePointersMade = p.field("opp_fg3")
	rec.OppThreePointersAttempted = p.field("opp_fg3a")
	rec.OppFreeThrowsMade = p.field("opp_ft")
	rec.OppFreeThrowsAttempted = p.field("opp_fta")
	rec.OppOffensiveRebounds = p.field("opp_orb")
	rec.OppDefensiveRebounds = p.field("opp_drb")
	rec.OppRebounds = p.field("opp_trb")
	rec.OppAssists = p.field("opp_ast")
	rec.OppSteals = p.field("opp_stl")
	rec.OppBlocks = p.field("opp_blk")
	rec.OppTurnovers = p.field("opp_tov")
	rec.OppPersonalFouls = p.field("opp_pf")
	if p.err != nil {
		return rec, p.err
	}

	return rec, nil
}

// CleanName strips the trailing tournament marker and repairs mis-encoded
// dashes in a display name.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, "NCAA")
	name = strings.TrimSpace(name)
	return dashRepairer.Replace(name)
}

// Sports-reference pages mix typographic dashes with ASCII hyphens, and some
// exports mangle the UTF-8 en dash into a three-byte artifact.
var dashRepairer = strings.NewReplacer(
	"â€“", "-", // "â€“": en dash read as latin-1
	"–", "-", // en dash
	"—", "-", // em dash
)

// keepUpcomingSingletons keeps, per (season, team) group of date-sorted rows,
// every completed game plus at most one pending row: the first one after the
// group's last completed game. Returns the kept rows and the dropped count.
func keepUpcomingSingletons(sorted []store.GameRecord) ([]store.GameRecord, int) {
	kept := sorted[:0]
	dropped := 0

	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) &&
			sorted[end].Season == sorted[start].Season &&
			sorted[end].Team == sorted[start].Team {
			end++
		}

		group := sorted[start:end]
		lastCompleted := -1
		for i := range group {
			if group[i].Completed() {
				lastCompleted = i
			}
		}

		pendingKept := false
		for i := range group {
			switch {
			case group[i].Completed():
				kept = append(kept, group[i])
			case i > lastCompleted && !pendingKept:
				kept = append(kept, group[i])
				pendingKept = true
			default:
				dropped++
			}
		}

		start = end
	}

	return kept, dropped
}

// intParser accumulates the first failure across a row's numeric fields.
type intParser struct {
	raw *RawGameRecord
	err error
}

func (p *intParser) field(name string) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(p.raw.Stat(name)))
	if err != nil {
		p.err = fmt.Errorf("field %s: %w", name, err)
		return 0
	}
	return v
}
