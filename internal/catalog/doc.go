// Package catalog records built reports in a SQLite database.
//
// Every "xreport build" adds one row per build and one row per written
// page, so that "xreport ls" can list earlier reports and "xreport serve"
// can find the latest build of a report by name. Builds are identified by
// random UUIDs.
//
// The database is a single file in the XDG data directory, opened through
// the CGO-free modernc.org/sqlite driver.
package catalog
