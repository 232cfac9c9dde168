package predict

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

func TestValidateSchema(t *testing.T) {
	if err := ValidateSchema([]string{"is_home", "net_rtg_comp"}); err != nil {
		t.Errorf("valid columns rejected: %v", err)
	}

	err := ValidateSchema([]string{"is_home", "nonexistent_col", "another_bad_col"})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Errorf("missing = %v, want both unknown columns reported at once", schemaErr.Missing)
	}
}

func TestNewLinearModelRejectsUnknownColumn(t *testing.T) {
	cfg := &ModelConfig{
		Name:      "bad-model",
		Intercept: 1,
		Coefficients: map[string]float64{
			"is_home":     2,
			"typo_column": 1,
		},
	}

	if _, err := NewLinearModel(cfg); err == nil {
		t.Error("model with unknown column should fail at construction, not scoring")
	}
}

func TestLinearModelPredict(t *testing.T) {
	cfg := &ModelConfig{
		Name:      "test-model",
		Intercept: 1.5,
		Coefficients: map[string]float64{
			"is_home":      3.0,
			"net_rtg_comp": 0.5,
		},
	}

	model, err := NewLinearModel(cfg)
	if err != nil {
		t.Fatalf("NewLinearModel: %v", err)
	}

	rows := []store.JoinedGameRow{
		{RollingFeatureRow: store.RollingFeatureRow{IsHome: 1}, NetRtgComp: 8},
		{RollingFeatureRow: store.RollingFeatureRow{IsHome: 0}, NetRtgComp: -4},
	}

	margins, err := model.Predict(context.Background(), rows)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	// 1.5 + 3*1 + 0.5*8 = 8.5; 1.5 + 0 + 0.5*(-4) = -0.5
	if math.Abs(margins[0]-8.5) > 1e-9 {
		t.Errorf("margins[0] = %f, want 8.5", margins[0])
	}
	if math.Abs(margins[1]-(-0.5)) > 1e-9 {
		t.Errorf("margins[1] = %f, want -0.5", margins[1])
	}
}

func TestLinearModelRequiredColumnsStable(t *testing.T) {
	cfg := &ModelConfig{
		Name:      "test-model",
		Intercept: 0,
		Coefficients: map[string]float64{
			"net_rtg_comp": 1,
			"is_home":      1,
			"rest_days":    1,
		},
	}

	model, err := NewLinearModel(cfg)
	if err != nil {
		t.Fatalf("NewLinearModel: %v", err)
	}

	cols := model.RequiredColumns()
	want := []string{"is_home", "net_rtg_comp", "rest_days"}
	for i, col := range want {
		if cols[i] != col {
			t.Fatalf("RequiredColumns() = %v, want sorted %v", cols, want)
		}
	}
}
