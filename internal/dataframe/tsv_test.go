package dataframe

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/nao1215/xreport/internal/model"
)

const sampleTSV = `NAME	ES	NES	NOTE
# comment lines are ignored
SET_A	0.5	1.9	top
SET_B	-0.2		weak
SET_C	0.1
`

func TestReadTSV(t *testing.T) {
	t.Parallel()

	f, err := ReadTSV(strings.NewReader(sampleTSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.NumCols() != 3 || f.NumRows() != 3 {
		t.Fatalf("expected 3x3, got %dx%d", f.NumRows(), f.NumCols())
	}
	if f.ColumnName(2) != "NOTE" {
		t.Errorf("unexpected column %q", f.ColumnName(2))
	}

	t.Run("numbers parsed", func(t *testing.T) {
		t.Parallel()
		v, err := f.Value(1, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != -0.2 {
			t.Errorf("expected -0.2, got %v (%T)", v, v)
		}
	})

	t.Run("empty field is nil", func(t *testing.T) {
		t.Parallel()
		v, err := f.Value(1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != nil {
			t.Errorf("expected nil, got %v", v)
		}
	})

	t.Run("text kept", func(t *testing.T) {
		t.Parallel()
		v, _ := f.Value(0, 2)
		if v != "top" {
			t.Errorf("expected text, got %v", v)
		}
	})

	t.Run("short line is ragged", func(t *testing.T) {
		t.Parallel()
		if _, err := f.Value(2, 1); !errors.Is(err, ErrRaggedRow) {
			t.Errorf("expected ErrRaggedRow, got %v", err)
		}
	})
}

func TestReadTSV_Empty(t *testing.T) {
	t.Parallel()

	if _, err := ReadTSV(strings.NewReader("")); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestFrame_WriteTSV(t *testing.T) {
	t.Parallel()

	t.Run("applies precision", func(t *testing.T) {
		t.Parallel()
		f := New("ES", "FDR").
			AddRow("SET_A", 0.51234, nil).
			AddRow("SET_B", -0.2, "n/a").
			SetMeta(NewMeta("sets").SetDefaultPrecision(2))

		var buf bytes.Buffer
		if err := f.WriteTSV(&buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "NAME\tES\tFDR\nSET_A\t0.51\t\nSET_B\t-0.20\tn/a\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("ragged row fails", func(t *testing.T) {
		t.Parallel()
		f := New("ES", "FDR").AddRow("SET_A", 0.5)
		var buf bytes.Buffer
		if err := f.WriteTSV(&buf); !errors.Is(err, ErrRaggedRow) {
			t.Errorf("expected ErrRaggedRow, got %v", err)
		}
	})
}

func TestFrame_HeatMap(t *testing.T) {
	t.Parallel()

	f := New("s1", "s2").AddRow("g1", 1.0, 2.0).AddRow("g2", 3.0, 4.0)
	hm, err := f.HeatMap(model.SchemeGlobal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := hm.Validate(); err != nil {
		t.Fatalf("expected valid heat map: %v", err)
	}
	if hm.Values[1][0] != 3 || hm.RowNames[1] != "g2" || hm.ColNames[1] != "s2" {
		t.Errorf("unexpected heat map %+v", hm)
	}
	if hm.Scheme != model.SchemeGlobal {
		t.Error("expected scheme to be carried over")
	}

	bad := New("s1").AddRow("g1", "high")
	if _, err := bad.HeatMap(model.SchemeGlobal); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}
}

func TestFrame_Series(t *testing.T) {
	t.Parallel()

	f := New("es", "rank").AddRow("1", 0.1, 3.0).AddRow("2", nil, 2.0).AddRow("3", 0.4, 1.0)
	series, err := f.Series()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	if series[0].Name != "es" || len(series[0].Values) != 3 {
		t.Fatalf("expected one value per row, got %+v", series[0])
	}
	if !math.IsNaN(series[0].Values[1]) {
		t.Errorf("expected NaN for the empty cell, got %v", series[0].Values[1])
	}
	if series[0].Values[2] != 0.4 {
		t.Errorf("expected later values to keep their row, got %+v", series[0].Values)
	}
	if len(series[1].Values) != 3 || series[1].Values[2] != 1 {
		t.Errorf("unexpected rank series %+v", series[1])
	}
}

func TestFrame_EmptyCells(t *testing.T) {
	t.Parallel()

	f, err := ReadTSV(strings.NewReader("NAME\ta\tb\nr1\t1\t10\nr2\t\t20\nr3\t3\t30\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("series stay aligned", func(t *testing.T) {
		t.Parallel()

		series, err := f.Series()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a, b := series[0].Values, series[1].Values
		if len(a) != len(b) {
			t.Fatalf("expected series of equal length, got %v and %v", a, b)
		}
		if !math.IsNaN(a[1]) || a[2] != 3 || b[2] != 30 {
			t.Errorf("expected a=[1 NaN 3] b=[10 20 30], got a=%v b=%v", a, b)
		}
	})

	t.Run("heat map marks missing cells", func(t *testing.T) {
		t.Parallel()

		hm, err := f.HeatMap(model.SchemeRowRelative)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !math.IsNaN(hm.Values[1][0]) {
			t.Errorf("expected NaN for the empty cell, got %v", hm.Values[1][0])
		}
		if hm.Values[1][1] != 20 {
			t.Errorf("expected 20, got %v", hm.Values[1][1])
		}
	})
}
