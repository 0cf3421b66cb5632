package model

import "errors"

// Heat map validation errors returned by HeatMap.Validate.
var (
	// ErrEmptyHeatMap is returned when the matrix has no rows or columns.
	ErrEmptyHeatMap = errors.New("heat map has no values")

	// ErrRaggedHeatMap is returned when rows have different lengths.
	ErrRaggedHeatMap = errors.New("heat map rows have different lengths")

	// ErrHeatMapLabels is returned when label counts do not match the matrix.
	ErrHeatMapLabels = errors.New("heat map labels do not match dimensions")
)
