package sportsref

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/normalize"
	"github.com/MavJames/ncaab-modeling-code/internal/store"
	"github.com/MavJames/ncaab-modeling-code/internal/store/repository"
)

// Ingester scrapes sports-reference gamelogs into the database.
type Ingester struct {
	client     *Client
	normalizer *normalize.Normalizer
	repo       *repository.GamelogRepository
	logger     *log.Logger
}

// NewIngester wires a scraper against the database. An empty baseURL selects
// the live site.
func NewIngester(db *store.Database, normalizer *normalize.Normalizer, baseURL string) *Ingester {
	return &Ingester{
		client:     NewClient(baseURL),
		normalizer: normalizer,
		repo:       repository.NewGamelogRepository(db),
		logger:     log.New(log.Writer(), "[ingester] ", log.LstdFlags),
	}
}

// IngestSeason scrapes every program's gamelog for a season and replaces the
// stored rows team by team. Missing pages are skipped; transient fetch
// failures for individual teams are logged and skipped so one bad page does
// not abort a multi-hour crawl.
func (in *Ingester) IngestSeason(ctx context.Context, season int) error {
	indexDoc, err := in.client.FetchSchoolIndex(ctx, season)
	if err != nil {
		return fmt.Errorf("failed to fetch school index for %d: %w", season, err)
	}

	schools, err := ParseSchoolIndex(indexDoc)
	if err != nil {
		return fmt.Errorf("failed to parse school index for %d: %w", season, err)
	}
	in.logger.Printf("✓ found %d schools for season %d", len(schools), season)

	ingested := 0
	for _, school := range schools {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := in.IngestTeam(ctx, season, school); err != nil {
			if errors.Is(err, ErrNotFound) {
				in.logger.Printf("⊘ no gamelog page for %s (%d), skipping", school.Name, season)
				continue
			}
			var transient *TransientError
			if errors.As(err, &transient) {
				in.logger.Printf("⊘ skipping %s (%d) after transient failure: %v", school.Name, season, err)
				continue
			}
			return err
		}
		ingested++
	}

	in.logger.Printf("✓ ingested gamelogs for %d/%d schools (season %d)", ingested, len(schools), season)
	return nil
}

// IngestTeam scrapes one team's gamelog and replaces its stored season rows.
func (in *Ingester) IngestTeam(ctx context.Context, season int, school School) error {
	doc, err := in.client.FetchGamelog(ctx, school.Slug, season)
	if err != nil {
		return err
	}

	raw := ParseGamelog(doc, season, school)
	if len(raw) == 0 {
		in.logger.Printf("⊘ empty gamelog for %s (%d)", school.Name, season)
		return nil
	}

	records, stats := in.normalizer.Parse(raw)
	if stats.DroppedParse > 0 {
		in.logger.Printf("dropped %d unparseable rows for %s (%d)", stats.DroppedParse, school.Name, season)
	}
	if len(records) == 0 {
		return nil
	}

	team := records[0].Team
	if err := in.repo.ReplaceTeamSeason(ctx, season, team, records); err != nil {
		return fmt.Errorf("failed to store gamelog for %s (%d): %w", team, season, err)
	}
	return nil
}

// UpdateDate refreshes the gamelogs of every stored team with a game on the
// given date. This is the cheap daily path: only teams playing get re-scraped.
func (in *Ingester) UpdateDate(ctx context.Context, season int, date time.Time) (int, error) {
	teams, err := in.repo.ListTeamsPlayingOn(ctx, season, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list teams playing on %s: %w", date.Format("2006-01-02"), err)
	}

	updated := 0
	for slug, team := range teams {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		school := School{Name: team, Slug: slug}
		if err := in.IngestTeam(ctx, season, school); err != nil {
			in.logger.Printf("⊘ failed to refresh %s: %v", team, err)
			continue
		}
		updated++
	}

	in.logger.Printf("✓ refreshed %d/%d teams for %s", updated, len(teams), date.Format("2006-01-02"))
	return updated, nil
}
