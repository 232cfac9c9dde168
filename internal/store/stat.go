package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// Stat is a derived metric. NaN marks a value that is undefined (for example a
// pace estimate with a zero rebounding denominator) and is carried through as
// missing rather than raising: it serializes as JSON null and SQL NULL.
type Stat float64

// Valid reports whether the metric holds a defined value.
func (s Stat) Valid() bool {
	return !math.IsNaN(float64(s))
}

// Float64 returns the underlying value; NaN when undefined.
func (s Stat) Float64() float64 {
	return float64(s)
}

// MarshalJSON encodes undefined metrics as null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

// UnmarshalJSON decodes null as an undefined metric.
func (s *Stat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Stat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Stat(v)
	return nil
}

// Value implements driver.Valuer, storing undefined metrics as NULL.
func (s Stat) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, nil
	}
	return float64(s), nil
}

// Scan implements sql.Scanner.
func (s *Stat) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = Stat(math.NaN())
	case float64:
		*s = Stat(v)
	case int64:
		*s = Stat(float64(v))
	default:
		return fmt.Errorf("cannot scan %T into Stat", src)
	}
	return nil
}
