package predict

import (
	"fmt"
	"strings"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// SchemaError reports feature columns a model requires that the feature table
// does not produce. It is fatal: scoring with a silently absent column would
// produce garbage margins.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("feature schema missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidateSchema checks every required column against the feature table's
// column registry. Returns a *SchemaError naming all missing columns at once,
// or nil.
func ValidateSchema(required []string) error {
	known := make(map[string]bool)
	for _, col := range store.FeatureColumns() {
		known[col] = true
	}

	var missing []string
	for _, col := range required {
		if !known[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
