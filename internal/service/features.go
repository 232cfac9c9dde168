package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/cache"
	"github.com/MavJames/ncaab-modeling-code/internal/pipeline"
	"github.com/MavJames/ncaab-modeling-code/internal/publisher"
	"github.com/MavJames/ncaab-modeling-code/internal/store"
	"github.com/MavJames/ncaab-modeling-code/internal/store/repository"
)

const featureCacheTTL = 6 * time.Hour

// RunStatus describes the most recent feature rebuild.
type RunStatus struct {
	LastRun time.Time         `json:"last_run"`
	Stats   pipeline.RunStats `json:"stats"`
}

// FeatureService owns the feature table lifecycle: rebuilding it from stored
// gamelogs, persisting it, and serving slices of the current build.
type FeatureService struct {
	gamelogRepo *repository.GamelogRepository
	featureRepo *repository.FeatureRepository
	pipeline    *pipeline.Pipeline
	cache       *cache.RedisCache
	publisher   *publisher.RedisStreamPublisher
	logger      *log.Logger

	mu      sync.RWMutex
	current *pipeline.Result
	lastRun time.Time
}

// NewFeatureService creates a new feature service. Cache and publisher may be
// nil, which disables those side effects.
func NewFeatureService(db *store.Database, pl *pipeline.Pipeline, rc *cache.RedisCache, pub *publisher.RedisStreamPublisher) *FeatureService {
	return &FeatureService{
		gamelogRepo: repository.NewGamelogRepository(db),
		featureRepo: repository.NewFeatureRepository(db),
		pipeline:    pl,
		cache:       rc,
		publisher:   pub,
		logger:      log.New(log.Writer(), "[features] ", log.LstdFlags),
	}
}

// Rebuild recomputes the full feature table from stored gamelogs, replaces
// the persisted rows, and keeps the result in memory for serving.
func (s *FeatureService) Rebuild(ctx context.Context) (*pipeline.Result, error) {
	records, err := s.gamelogRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading gamelogs: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no gamelogs stored, ingest a season first")
	}

	result := s.pipeline.RunRecords(records)

	if err := s.featureRepo.ReplaceSeasons(ctx, result.Rows); err != nil {
		return nil, fmt.Errorf("persisting feature rows: %w", err)
	}

	s.mu.Lock()
	s.current = result
	s.lastRun = time.Now().UTC()
	s.mu.Unlock()

	if s.cache != nil {
		status := RunStatus{LastRun: s.lastRun, Stats: result.Stats}
		if err := s.cache.SetJSON(ctx, cache.PipelineStatusKey, status, 0); err != nil {
			s.logger.Printf("⊘ failed to cache pipeline status: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishFeatureRun(ctx, result.Stats); err != nil {
			s.logger.Printf("⊘ failed to publish feature run event: %v", err)
		}
	}

	s.logger.Printf("✓ rebuilt feature table: %d rows", result.Stats.OutputRows)
	return result, nil
}

// Status returns the stats of the most recent rebuild, or false if none has
// completed yet.
func (s *FeatureService) Status() (RunStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return RunStatus{}, false
	}
	return RunStatus{LastRun: s.lastRun, Stats: s.current.Stats}, true
}

// RowsByDate returns the joined feature rows for games on one date, from the
// current in-memory build.
func (s *FeatureService) RowsByDate(ctx context.Context, date time.Time) ([]store.JoinedGameRow, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current == nil {
		return nil, fmt.Errorf("feature table not built yet")
	}

	day := date.UTC().Truncate(24 * time.Hour)
	var rows []store.JoinedGameRow
	for i := range current.Rows {
		if current.Rows[i].GameDate.Equal(day) {
			rows = append(rows, current.Rows[i])
		}
	}

	if s.cache != nil && len(rows) > 0 {
		if err := s.cache.SetJSON(ctx, cache.FeaturesByDateKey(day), rows, featureCacheTTL); err != nil {
			s.logger.Printf("⊘ failed to cache features for %s: %v", day.Format("2006-01-02"), err)
		}
	}

	return rows, nil
}

// RowsByTeam returns a team's joined feature rows for a season, in date order.
func (s *FeatureService) RowsByTeam(season int, team string) ([]store.JoinedGameRow, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current == nil {
		return nil, fmt.Errorf("feature table not built yet")
	}

	var rows []store.JoinedGameRow
	for i := range current.Rows {
		r := &current.Rows[i]
		if r.Season == season && r.Team == team {
			rows = append(rows, *r)
		}
	}
	return rows, nil
}

// Teams lists the canonical team names stored for a season.
func (s *FeatureService) Teams(ctx context.Context, season int) (map[string]string, error) {
	return s.gamelogRepo.ListTeams(ctx, season)
}
