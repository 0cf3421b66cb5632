package dataframe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/xreport/internal/model"
)

// DefaultRowHeader is the header of the row-name column in TSV output.
const DefaultRowHeader = "NAME"

// ReadTSV reads a tab-separated table. The first line is the header; its
// first field labels the row-name column. Each following line starts with
// the row name. Fields that parse as numbers become float64, empty fields
// become nil. Short lines are kept and surface as ErrRaggedRow on read.
func ReadTSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read TSV header: %w", err)
	}
	if len(header) < 1 {
		return nil, ErrEmptyInput
	}

	f := New(header[1:]...)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read TSV line: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		values := make([]any, 0, len(record)-1)
		for _, field := range record[1:] {
			values = append(values, parseField(field))
		}
		f.AddRow(record[0], values...)
	}
	return f, nil
}

// parseField converts a TSV field into a cell value.
func parseField(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// WriteTSV writes f as tab-separated text, applying the frame's precision
// policy. It fails on the first malformed row.
func (f *Frame) WriteTSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	header := append([]string{DefaultRowHeader}, f.colNames...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write TSV header: %w", err)
	}

	for r := range f.rows {
		record := make([]string, 0, len(f.colNames)+1)
		record = append(record, f.rowNames[r])
		for c := range f.colNames {
			v, err := f.Value(r, c)
			if err != nil {
				return err
			}
			record = append(record, f.formatValue(v, c))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write TSV line: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (f *Frame) formatValue(v any, c int) string {
	if v == nil {
		return ""
	}
	if f.meta != nil {
		v = f.meta.AdjustPrecision(v, c)
	}
	return fmt.Sprint(v)
}

// HeatMap converts the numeric frame into a heat map matrix. Empty cells
// become NaN and are drawn in the missing-value color.
func (f *Frame) HeatMap(scheme model.ColorScheme) (*model.HeatMap, error) {
	hm := &model.HeatMap{
		RowNames: append([]string(nil), f.rowNames...),
		ColNames: f.ColumnNames(),
		Values:   make([][]float64, len(f.rows)),
		Scheme:   scheme,
	}
	for r := range f.rows {
		hm.Values[r] = make([]float64, len(f.colNames))
		for c := range f.colNames {
			v, err := f.number(r, c)
			if err != nil {
				return nil, err
			}
			hm.Values[r][c] = v
		}
	}
	return hm, nil
}

// Series returns one chart series per column, values in row order.
// Empty cells become NaN so every series keeps one value per row.
func (f *Frame) Series() ([]model.Series, error) {
	out := make([]model.Series, 0, len(f.colNames))
	for c, name := range f.colNames {
		s := model.Series{Name: name, Values: make([]float64, len(f.rows))}
		for r := range f.rows {
			x, err := f.number(r, c)
			if err != nil {
				return nil, err
			}
			s.Values[r] = x
		}
		out = append(out, s)
	}
	return out, nil
}

// number is Float with empty cells mapped to NaN.
func (f *Frame) number(r, c int) (float64, error) {
	v, err := f.Value(r, c)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return math.NaN(), nil
	}
	return f.Float(r, c)
}
