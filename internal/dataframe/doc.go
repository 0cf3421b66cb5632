// Package dataframe provides Frame, an in-memory rich table that can be
// rendered by a report page.
//
// A Frame holds row and column names, cell values of any type, optional
// per-cell colors and links, and a Meta describing the title, numeric
// precision and alignment of each column. Frames are read from and
// written to tab-separated text, which is also the "plain text format"
// sibling file linked from rendered tables.
package dataframe
