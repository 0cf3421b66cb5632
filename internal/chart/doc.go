// Package chart renders model.Chart values to PNG files, and optionally
// SVG files, using draw2d.
//
// Charts are drawn without text. Titles, captions and series names are
// shown by the page around the image, which keeps rendering independent
// of installed fonts.
package chart
