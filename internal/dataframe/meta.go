package dataframe

import (
	"math"
	"strconv"
)

// Alignments accepted by Meta.SetAlignment.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// noPrecision marks a column whose values are printed as-is.
const noPrecision = -1

// Meta holds the formatting policy of a Frame.
type Meta struct {
	title            string
	defaultPrecision int
	precision        map[int]int
	alignment        map[int]string
}

// NewMeta creates metadata with the given table title.
func NewMeta(title string) *Meta {
	return &Meta{
		title:            title,
		defaultPrecision: noPrecision,
		precision:        make(map[int]int),
		alignment:        make(map[int]string),
	}
}

// SetPrecision sets the number of decimals printed for floats in column col.
func (m *Meta) SetPrecision(col, digits int) *Meta {
	m.precision[col] = digits
	return m
}

// SetDefaultPrecision sets the number of decimals for columns without an
// explicit precision. A negative value disables rounding.
func (m *Meta) SetDefaultPrecision(digits int) *Meta {
	if digits < 0 {
		digits = noPrecision
	}
	m.defaultPrecision = digits
	return m
}

// SetAlignment sets the HTML alignment of column col.
func (m *Meta) SetAlignment(col int, align string) *Meta {
	m.alignment[col] = align
	return m
}

// Title returns the table title.
func (m *Meta) Title() string { return m.title }

// ColumnAlignment returns the alignment of column col, or "".
func (m *Meta) ColumnAlignment(col int) string { return m.alignment[col] }

// AdjustPrecision formats floating point values of column col with the
// configured number of decimals. Other values are returned unchanged.
func (m *Meta) AdjustPrecision(v any, col int) any {
	digits, ok := m.precision[col]
	if !ok {
		digits = m.defaultPrecision
	}
	if digits == noPrecision {
		return v
	}

	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', digits, 64)
}
