// Package log provides structured logging for xreport, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Configurable log levels with verbose mode support
//   - Stack traces for errors created with github.com/go-errors/errors
//   - Consistent log formatting across the application
//
// # Traces
//
// Renderers wrap their failures with go-errors so that the caller site is
// recorded. TraceHandler flattens error attributes to their message and,
// in verbose mode, adds a "<key>_stack" attribute with the recorded stack.
// Trace returns the same text for embedding into report error blocks.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Error("Trouble saving image", "error", err)
//
//	// Pass the logger to pages instead of relying on slog.Default
//	pg := page.New("index", "GSEA Report", page.WithLogger(logger))
package log
