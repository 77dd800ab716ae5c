package domain

import "testing"

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"3.5", 3.5},
		{" 7 ", 7},
		{"-2", -2},
		{"+4.25", 4.25},
		{".5", 0.5},
		{"5.", 5},
		{"12abc", 12},
		{"1e3", 1000},
		{"1e", 1},
		{"2.5E-1x", 0.25},
		{"0x10", 0},
		{"NaN", 0},
		{"Infinity", 0},
		{"-Infinity", 0},
		{"1e400", 0},
		{"-", 0},
		{".", 0},
		{"\t42\n", 42},
	}

	for _, tt := range tests {
		if got := Coerce(tt.in); got != tt.want {
			t.Errorf("Coerce(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecord_NumMissingField(t *testing.T) {
	r := Record{"score": "2"}

	if got := r.Num("score"); got != 2 {
		t.Errorf("Num(score) = %v, want 2", got)
	}
	if got := r.Num("allocation_level"); got != 0 {
		t.Errorf("Num(missing) = %v, want 0", got)
	}
	if got := r.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
}

func TestRawTable_NilSafe(t *testing.T) {
	var tbl *RawTable
	if tbl.Len() != 0 {
		t.Errorf("nil table Len = %d, want 0", tbl.Len())
	}
	if tbl.HasField("a") {
		t.Error("nil table should not report fields")
	}
}

func TestStrategy_DisplayLabel(t *testing.T) {
	if got := (Strategy{Tag: "greedy"}).DisplayLabel(); got != "greedy" {
		t.Errorf("DisplayLabel fallback = %q, want greedy", got)
	}
	if got := StrategyQuantum.DisplayLabel(); got != "Quantum" {
		t.Errorf("DisplayLabel = %q, want Quantum", got)
	}
}
