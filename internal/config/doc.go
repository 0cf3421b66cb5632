// Package config provides the runtime configuration of xreport and the
// YAML report definition that describes which pages and sections a report
// contains.
package config
