// Package linkcheck verifies the links of a written report.
//
// Reports only use relative links, so that the output directory can be
// moved as a whole. The checker crawls the report starting at its index
// page, follows links to other pages of the report and reports every
// relative link or image whose target file is missing, as well as pages
// that no other page links to.
//
// HTML is parsed with golang.org/x/net/html. External links (with a
// scheme or host) are collected but never fetched.
package linkcheck
