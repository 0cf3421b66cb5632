// Package report assembles pages into a report directory.
//
// A Report is an ordered set of pages sharing one output directory.
// Writer.WriteAll writes every page concurrently, adds the stylesheet and
// a generated index page, and returns a Result describing the files it
// produced. Result writers then present that result in other formats:
//   - MarkdownWriter: README.md for the report directory
//   - JSONWriter: a machine-readable manifest
//   - SummaryWriter: a styled terminal summary
//
// Result writers implement the ResultWriter interface, allowing them to be
// composed with MultiWriter.
package report
