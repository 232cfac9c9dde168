package predict

import (
	"context"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// Predictor scores joined feature rows. Implementations declare the columns
// they read so callers can validate the feature schema before scoring.
type Predictor interface {
	// Name identifies the model for persistence and logging.
	Name() string

	// RequiredColumns lists the feature columns the model reads.
	RequiredColumns() []string

	// Predict returns one predicted margin per input row, in input order.
	Predict(ctx context.Context, rows []store.JoinedGameRow) ([]float64, error)
}
