package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// PredictionRepository persists model outputs keyed by game and model name
type PredictionRepository struct {
	db *store.Database
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *store.Database) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// ReplaceForDate swaps out a model's predictions for one slate date
func (r *PredictionRepository) ReplaceForDate(ctx context.Context, modelName string, date time.Time, preds []store.Prediction) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM predictions WHERE game_date = $1 AND model_name = $2`, date, modelName); err != nil {
		return fmt.Errorf("clearing predictions: %w", err)
	}

	query := `
		INSERT INTO predictions (season, game_date, team, opponent, is_home, predicted_margin, model_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range preds {
		p := &preds[i]
		if _, err := tx.ExecContext(ctx, query,
			p.Season, p.GameDate, p.Team, p.Opponent, p.IsHome, p.Margin, modelName); err != nil {
			return fmt.Errorf("inserting prediction %s vs %s: %w", p.Team, p.Opponent, err)
		}
	}

	return tx.Commit()
}

// ListByDate returns predictions for a slate date, strongest margins first
func (r *PredictionRepository) ListByDate(ctx context.Context, date time.Time) ([]store.Prediction, error) {
	query := `
		SELECT season, game_date, team, opponent, is_home, predicted_margin, model_name, created_at
		FROM predictions
		WHERE game_date = $1
		ORDER BY predicted_margin DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	var preds []store.Prediction
	for rows.Next() {
		var p store.Prediction
		if err := rows.Scan(&p.Season, &p.GameDate, &p.Team, &p.Opponent, &p.IsHome, &p.Margin, &p.ModelName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		preds = append(preds, p)
	}

	return preds, rows.Err()
}
