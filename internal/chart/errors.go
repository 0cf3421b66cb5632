package chart

import "errors"

var (
	// ErrNoData is returned when a chart has no finite value to plot.
	ErrNoData = errors.New("chart has no data")
	// ErrInvalidSize is returned for non-positive image dimensions.
	ErrInvalidSize = errors.New("invalid image size")
)
