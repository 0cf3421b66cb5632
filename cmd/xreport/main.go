// Package main provides the entry point for the xreport CLI.
//
// xreport builds static HTML reports from a YAML report definition:
// pages of text, tables, charts and heat maps with an index page, a
// README.md and a manifest.json, all linked relatively so the output
// directory can be copied anywhere.
//
// Usage:
//
//	xreport init
//	xreport build -c xreport.yaml -o report
//	xreport serve report
//
// See --help for all available options.
package main

// main is the entry point for xreport.
func main() {
	Execute()
}
