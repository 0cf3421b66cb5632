// Package server serves written reports over HTTP.
//
// A server has an optional root directory served at "/" and an optional
// build catalog. With a catalog, every recorded build is reachable under
// "/builds/{id}/" and the builds are listed as JSON under "/api/builds".
package server
