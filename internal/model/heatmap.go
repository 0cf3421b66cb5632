package model

import "fmt"

// ColorScheme controls how heat map values are mapped to colors.
type ColorScheme int

const (
	// SchemeRowRelative scales every row to its own min and max.
	SchemeRowRelative ColorScheme = iota

	// SchemeGlobal scales all cells to the matrix-wide min and max.
	SchemeGlobal
)

// HeatMap is a dense numeric matrix with row and column labels.
type HeatMap struct {
	RowNames []string
	ColNames []string
	Values   [][]float64
	Scheme   ColorScheme

	// CellSize is the edge length of one cell in pixels. Zero uses the
	// renderer default.
	CellSize int
}

// Dims returns the number of rows and columns.
func (h *HeatMap) Dims() (rows, cols int) {
	rows = len(h.Values)
	if rows > 0 {
		cols = len(h.Values[0])
	}
	return rows, cols
}

// Validate checks that the matrix is rectangular, non-empty and that
// labels, when given, match its dimensions.
func (h *HeatMap) Validate() error {
	rows, cols := h.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyHeatMap
	}
	for r, row := range h.Values {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d values, expected %d", ErrRaggedHeatMap, r, len(row), cols)
		}
	}
	if len(h.RowNames) != 0 && len(h.RowNames) != rows {
		return fmt.Errorf("%w: %d row names for %d rows", ErrHeatMapLabels, len(h.RowNames), rows)
	}
	if len(h.ColNames) != 0 && len(h.ColNames) != cols {
		return fmt.Errorf("%w: %d column names for %d columns", ErrHeatMapLabels, len(h.ColNames), cols)
	}
	return nil
}
