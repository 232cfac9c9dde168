package predict

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/MavJames/ncaab-modeling-code/internal/store"
)

// ModelConfig is the on-disk description of a linear margin model.
type ModelConfig struct {
	Name         string             `yaml:"name"`
	Intercept    float64            `yaml:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}

// LoadModelConfig reads a model definition from a YAML file.
func LoadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model config: %w", err)
	}

	var cfg ModelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse model config: %w", err)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("model config %s has no name", path)
	}
	if len(cfg.Coefficients) == 0 {
		return nil, fmt.Errorf("model config %s has no coefficients", path)
	}
	return &cfg, nil
}

// LinearModel predicts margins as intercept + Σ coef·feature. The coefficient
// keys double as the model's required columns.
type LinearModel struct {
	name      string
	intercept float64
	columns   []string
	coefs     map[string]float64
}

// NewLinearModel builds a model from config, failing fast if any coefficient
// names a column the feature table does not produce.
func NewLinearModel(cfg *ModelConfig) (*LinearModel, error) {
	columns := make([]string, 0, len(cfg.Coefficients))
	for col := range cfg.Coefficients {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	if err := ValidateSchema(columns); err != nil {
		return nil, fmt.Errorf("model %s: %w", cfg.Name, err)
	}

	return &LinearModel{
		name:      cfg.Name,
		intercept: cfg.Intercept,
		columns:   columns,
		coefs:     cfg.Coefficients,
	}, nil
}

func (m *LinearModel) Name() string { return m.name }

func (m *LinearModel) RequiredColumns() []string {
	cols := make([]string, len(m.columns))
	copy(cols, m.columns)
	return cols
}

func (m *LinearModel) Predict(ctx context.Context, rows []store.JoinedGameRow) ([]float64, error) {
	margins := make([]float64, len(rows))
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		margin := m.intercept
		for _, col := range m.columns {
			v, ok := rows[i].Feature(col)
			if !ok {
				return nil, &SchemaError{Missing: []string{col}}
			}
			margin += m.coefs[col] * v
		}
		margins[i] = margin
	}
	return margins, nil
}
