package store

import "testing"

func TestFeatureColumnsResolve(t *testing.T) {
	row := &JoinedGameRow{}

	seen := make(map[string]bool)
	for _, col := range FeatureColumns() {
		if seen[col] {
			t.Errorf("duplicate feature column %q", col)
		}
		seen[col] = true

		if _, ok := row.Feature(col); !ok {
			t.Errorf("registered column %q does not resolve", col)
		}
	}
}

func TestFeatureUnknownColumn(t *testing.T) {
	row := &JoinedGameRow{}
	if _, ok := row.Feature("no_such_column"); ok {
		t.Error("unknown column should not resolve")
	}
}
