package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate and Definition.Validate so
// that callers can use errors.Is for programmatic handling.
var (
	// ErrNoDefinition is returned when no report definition was loaded.
	ErrNoDefinition = errors.New("no report definition: provide one with --config or run 'xreport init'")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidChartSize is returned when a chart dimension is not positive.
	ErrInvalidChartSize = errors.New("invalid chart size: width and height must be positive")

	// ErrNoDBDir is returned when the catalog is enabled without a directory.
	ErrNoDBDir = errors.New("no catalog directory specified")

	// ErrNoPages is returned when a report definition has no pages.
	ErrNoPages = errors.New("report definition has no pages")

	// ErrEmptyPageName is returned when a page has no name.
	ErrEmptyPageName = errors.New("page name must not be empty")

	// ErrDuplicatePage is returned when two pages share a name, which
	// would make them overwrite each other's file.
	ErrDuplicatePage = errors.New("duplicate page name")

	// ErrReservedPageName is returned for a page named like the generated
	// index page.
	ErrReservedPageName = errors.New("page name is reserved")

	// ErrUnknownSection is returned for a section type xreport cannot build.
	ErrUnknownSection = errors.New("unknown section type")

	// ErrMissingSource is returned when a section needs a file or inline
	// content and has neither.
	ErrMissingSource = errors.New("section has no source")
)
