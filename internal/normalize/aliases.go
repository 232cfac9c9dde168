package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// AliasTable maps historically inconsistent opponent spellings to canonical
// team names. It is loaded from configuration at pipeline start so name drift
// across seasons is a data update, not a code change.
type AliasTable map[string]string

// LoadAliasTable reads an alias table from a YAML file of key: canonical pairs.
func LoadAliasTable(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias table: %w", err)
	}

	var table AliasTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing alias table %s: %w", path, err)
	}

	return table, nil
}

// Canonical resolves a name through the table, returning the input unchanged
// when no alias exists.
func (t AliasTable) Canonical(name string) string {
	if canonical, ok := t[name]; ok {
		return canonical
	}
	return name
}
