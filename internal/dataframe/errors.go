package dataframe

import "errors"

var (
	// ErrOutOfRange is returned when a row or column index is outside the frame.
	ErrOutOfRange = errors.New("cell index out of range")

	// ErrRaggedRow is returned when a row has fewer values than the frame has columns.
	ErrRaggedRow = errors.New("row has fewer values than columns")

	// ErrNotNumeric is returned when a numeric view is requested for a non-numeric cell.
	ErrNotNumeric = errors.New("cell is not numeric")

	// ErrEmptyInput is returned when a TSV input has no header line.
	ErrEmptyInput = errors.New("no header line in input")
)
