package dataframe

import (
	"fmt"

	"github.com/nao1215/xreport/internal/page"
)

var _ page.TabularDataSource = (*Frame)(nil)

// cell addresses one value of a Frame.
type cell struct {
	r, c int
}

// Frame is a rich table: named rows and columns with per-cell annotations.
// Rows may be shorter than the column count; reading a missing value
// returns ErrRaggedRow.
type Frame struct {
	colNames []string
	rowNames []string
	rows     [][]any
	colors   map[cell]string
	links    map[cell]string
	meta     *Meta
}

// New creates an empty frame with the given column names.
func New(colNames ...string) *Frame {
	return &Frame{
		colNames: colNames,
		colors:   make(map[cell]string),
		links:    make(map[cell]string),
	}
}

// AddRow appends a row. A nil value is an empty cell.
func (f *Frame) AddRow(name string, values ...any) *Frame {
	f.rowNames = append(f.rowNames, name)
	f.rows = append(f.rows, values)
	return f
}

// SetColor sets the background color of a cell.
func (f *Frame) SetColor(r, c int, color string) *Frame {
	f.colors[cell{r, c}] = color
	return f
}

// SetLink makes a cell link to href.
func (f *Frame) SetLink(r, c int, href string) *Frame {
	f.links[cell{r, c}] = href
	return f
}

// SetMeta attaches formatting metadata. A nil meta removes it.
func (f *Frame) SetMeta(m *Meta) *Frame {
	f.meta = m
	return f
}

// Meta returns the attached metadata, or nil.
func (f *Frame) Meta() *Meta {
	return f.meta
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return len(f.rows) }

// NumCols returns the number of named columns.
func (f *Frame) NumCols() int { return len(f.colNames) }

// ColumnName returns the name of column c.
func (f *Frame) ColumnName(c int) string {
	if c < 0 || c >= len(f.colNames) {
		return ""
	}
	return f.colNames[c]
}

// ColumnNames returns a copy of the column names.
func (f *Frame) ColumnNames() []string {
	return append([]string(nil), f.colNames...)
}

// RowName returns the name of row r.
func (f *Frame) RowName(r int) string {
	if r < 0 || r >= len(f.rowNames) {
		return ""
	}
	return f.rowNames[r]
}

// Value returns the value at (r, c).
func (f *Frame) Value(r, c int) (any, error) {
	if r < 0 || r >= len(f.rows) || c < 0 || c >= len(f.colNames) {
		return nil, fmt.Errorf("%w: (%d, %d) in %dx%d frame", ErrOutOfRange, r, c, len(f.rows), len(f.colNames))
	}
	row := f.rows[r]
	if c >= len(row) {
		return nil, fmt.Errorf("%w: row %d (%s) has %d of %d values", ErrRaggedRow, r, f.rowNames[r], len(row), len(f.colNames))
	}
	return row[c], nil
}

// Color returns the background color of (r, c), or "".
func (f *Frame) Color(r, c int) string { return f.colors[cell{r, c}] }

// Link returns the link target of (r, c), or "".
func (f *Frame) Link(r, c int) string { return f.links[cell{r, c}] }

// MetaData returns the metadata as the page interface. A frame without
// metadata returns a nil interface.
func (f *Frame) MetaData() page.MetaData {
	if f.meta == nil {
		return nil
	}
	return f.meta
}

// Float returns the value at (r, c) as a float64.
func (f *Frame) Float(r, c int) (float64, error) {
	v, err := f.Value(r, c)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: (%d, %d) holds %T", ErrNotNumeric, r, c, v)
	}
}
