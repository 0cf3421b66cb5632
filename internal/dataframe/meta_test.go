package dataframe

import (
	"math"
	"testing"
)

func TestMeta_AdjustPrecision(t *testing.T) {
	t.Parallel()

	m := NewMeta("t").SetPrecision(0, 2).SetPrecision(1, 0)

	tests := []struct {
		name string
		v    any
		col  int
		want any
	}{
		{name: "rounds float", v: 0.12345, col: 0, want: "0.12"},
		{name: "zero decimals", v: 2.6, col: 1, want: "3"},
		{name: "float32", v: float32(0.5), col: 0, want: "0.50"},
		{name: "string unchanged", v: "TP53", col: 0, want: "TP53"},
		{name: "int unchanged", v: 7, col: 0, want: 7},
		{name: "no precision for column", v: 0.12345, col: 2, want: 0.12345},
		{name: "NaN", v: math.NaN(), col: 0, want: "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := m.AdjustPrecision(tt.v, tt.col); got != tt.want {
				t.Errorf("expected %v (%T), got %v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}

func TestMeta_DefaultPrecision(t *testing.T) {
	t.Parallel()

	m := NewMeta("t").SetDefaultPrecision(3).SetPrecision(1, 1)
	if got := m.AdjustPrecision(1.23456, 0); got != "1.235" {
		t.Errorf("expected default precision, got %v", got)
	}
	if got := m.AdjustPrecision(1.23456, 1); got != "1.2" {
		t.Errorf("expected column precision, got %v", got)
	}

	m.SetDefaultPrecision(-5)
	if got := m.AdjustPrecision(1.23456, 0); got != 1.23456 {
		t.Errorf("expected rounding disabled, got %v", got)
	}
}

func TestMeta_Alignment(t *testing.T) {
	t.Parallel()

	m := NewMeta("t").SetAlignment(2, AlignRight)
	if m.ColumnAlignment(2) != AlignRight {
		t.Errorf("expected right, got %q", m.ColumnAlignment(2))
	}
	if m.ColumnAlignment(0) != "" {
		t.Errorf("expected no alignment, got %q", m.ColumnAlignment(0))
	}
}
