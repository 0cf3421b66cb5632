// Package pipeline turns a report definition into report pages.
//
// Every section of a page definition becomes a Step. A Pipeline runs the
// steps of one page in order against a Job, which carries the page under
// construction and the build settings. The Builder creates one pipeline
// per page and builds pages concurrently using errgroup, then adds them
// to the report in definition order.
//
// By default a failing step does not abort the build: the failure is
// shown on the page as an error block and the remaining sections are
// still added. WithStrict turns step failures into build failures.
package pipeline
