package store

import (
	"encoding/json"
	"math"
	"testing"
)

func TestStatJSONNull(t *testing.T) {
	undefined := Stat(math.NaN())

	data, err := json.Marshal(undefined)
	if err != nil {
		t.Fatalf("marshal NaN stat: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("NaN stat marshaled to %s, want null", data)
	}

	var back Stat
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if back.Valid() {
		t.Error("null should round-trip to an invalid stat")
	}

	data, err = json.Marshal(Stat(65.8))
	if err != nil {
		t.Fatalf("marshal stat: %v", err)
	}
	if string(data) != "65.8" {
		t.Errorf("stat marshaled to %s, want 65.8", data)
	}
}

func TestStatSQLNull(t *testing.T) {
	v, err := Stat(math.NaN()).Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != nil {
		t.Errorf("NaN stat Value() = %v, want nil", v)
	}

	var s Stat
	if err := s.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if s.Valid() {
		t.Error("scanned NULL should be invalid")
	}

	if err := s.Scan(65.8); err != nil {
		t.Fatalf("Scan float: %v", err)
	}
	if float64(s) != 65.8 {
		t.Errorf("scanned stat = %f, want 65.8", float64(s))
	}
}
