package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/cache"
	"github.com/MavJames/ncaab-modeling-code/internal/predict"
	"github.com/MavJames/ncaab-modeling-code/internal/publisher"
	"github.com/MavJames/ncaab-modeling-code/internal/store"
	"github.com/MavJames/ncaab-modeling-code/internal/store/repository"
)

const predictionCacheTTL = 6 * time.Hour

// PredictionService scores upcoming games and publishes one prediction per
// matchup, from the favorite's side.
type PredictionService struct {
	predRepo  *repository.PredictionRepository
	features  *FeatureService
	predictor predict.Predictor
	cache     *cache.RedisCache
	publisher *publisher.RedisStreamPublisher
	logger    *log.Logger
}

// NewPredictionService wires a predictor against the feature service. The
// model's required columns are validated up front; a model referencing a
// column the feature table does not produce is an error here, not at scoring
// time.
func NewPredictionService(db *store.Database, features *FeatureService, predictor predict.Predictor, rc *cache.RedisCache, pub *publisher.RedisStreamPublisher) (*PredictionService, error) {
	if err := predict.ValidateSchema(predictor.RequiredColumns()); err != nil {
		return nil, fmt.Errorf("model %s: %w", predictor.Name(), err)
	}

	return &PredictionService{
		predRepo:  repository.NewPredictionRepository(db),
		features:  features,
		predictor: predictor,
		cache:     rc,
		publisher: pub,
		logger:    log.New(log.Writer(), "[predictions] ", log.LstdFlags),
	}, nil
}

// PredictDate scores the unplayed games on a date and replaces the stored
// slate. Every game reaches the feature table twice, once per side; the slate
// keeps the favorite's row so each matchup appears exactly once.
func (s *PredictionService) PredictDate(ctx context.Context, date time.Time) ([]store.Prediction, error) {
	rows, err := s.features.RowsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	upcoming := make([]store.JoinedGameRow, 0, len(rows))
	for i := range rows {
		if !rows[i].Completed() {
			upcoming = append(upcoming, rows[i])
		}
	}
	if len(upcoming) == 0 {
		return nil, nil
	}

	margins, err := s.predictor.Predict(ctx, upcoming)
	if err != nil {
		return nil, fmt.Errorf("scoring %d games: %w", len(upcoming), err)
	}

	day := date.UTC().Truncate(24 * time.Hour)
	preds := dedupFavorites(upcoming, margins, s.predictor.Name(), day)

	if err := s.predRepo.ReplaceForDate(ctx, s.predictor.Name(), day, preds); err != nil {
		return nil, fmt.Errorf("persisting predictions: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.PredictionsByDateKey(day), preds, predictionCacheTTL); err != nil {
			s.logger.Printf("⊘ failed to cache predictions for %s: %v", day.Format("2006-01-02"), err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPredictions(ctx, preds); err != nil {
			s.logger.Printf("⊘ failed to publish prediction slate: %v", err)
		}
	}

	s.logger.Printf("✓ predicted %d games for %s (%s)", len(preds), day.Format("2006-01-02"), s.predictor.Name())
	return preds, nil
}

// ListByDate returns the stored slate for a date, preferring the cache.
func (s *PredictionService) ListByDate(ctx context.Context, date time.Time) ([]store.Prediction, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	if s.cache != nil {
		var cached []store.Prediction
		if err := s.cache.GetJSON(ctx, cache.PredictionsByDateKey(day), &cached); err == nil {
			return cached, nil
		}
	}

	return s.predRepo.ListByDate(ctx, day)
}

// dedupFavorites collapses the two per-side rows of each matchup into one
// prediction from the favorite's perspective. The two sides carry negated
// comparative features, so their margins are near mirrors; keeping the
// nonnegative side breaks the tie deterministically by team name.
func dedupFavorites(rows []store.JoinedGameRow, margins []float64, modelName string, day time.Time) []store.Prediction {
	type matchup struct{ a, b string }

	best := make(map[matchup]store.Prediction)
	order := make([]matchup, 0, len(rows))

	for i := range rows {
		r := &rows[i]
		key := matchup{a: r.Team, b: r.Opponent}
		if key.b < key.a {
			key.a, key.b = key.b, key.a
		}

		pred := store.Prediction{
			Season:    r.Season,
			GameDate:  day,
			Team:      r.Team,
			Opponent:  r.Opponent,
			IsHome:    r.IsHome,
			Margin:    margins[i],
			ModelName: modelName,
		}

		existing, seen := best[key]
		if !seen {
			best[key] = pred
			order = append(order, key)
			continue
		}
		if pred.Margin > existing.Margin ||
			(pred.Margin == existing.Margin && pred.Team < existing.Team) {
			best[key] = pred
		}
	}

	preds := make([]store.Prediction, 0, len(order))
	for _, key := range order {
		preds = append(preds, best[key])
	}
	return preds
}
