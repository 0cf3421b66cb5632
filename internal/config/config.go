package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "xreport"

	// DefaultOutputDir is the directory reports are written to when no
	// --output flag is given. It is relative to the working directory.
	DefaultOutputDir = "report"

	// DefaultWorkers is the number of pages written concurrently.
	// Page serialization is mostly CPU bound, so a small pool is enough.
	DefaultWorkers = 4

	// DefaultChartWidth and DefaultChartHeight are the pixel dimensions of
	// charts whose section does not set a size.
	DefaultChartWidth  = 500
	DefaultChartHeight = 400

	// DefaultServeAddr is the listen address of "xreport serve".
	// Reports may contain unpublished data, so only loopback is bound.
	DefaultServeAddr = "127.0.0.1:8080"

	// DefaultCatalogFile is the SQLite file of the build catalog.
	DefaultCatalogFile = "catalog.db"
)

// Config holds all runtime options of xreport.
// It is populated from CLI flags and passed through the application;
// there is no global configuration state.
type Config struct {
	// ConfigFilePath is the path to the report definition.
	// If empty, FindConfigFile searches the working directory and the XDG
	// config directory.
	ConfigFilePath string

	// Definition is the loaded report definition.
	Definition *Definition

	// OutputDir is the directory pages, images and plain-text tables are
	// written to. Created if missing.
	OutputDir string

	// Verbose enables debug logging and stack traces in log output.
	Verbose bool

	// SVG requests an SVG rendition next to every PNG picture.
	SVG bool

	// Strict aborts the build when a section fails instead of showing an
	// error block on its page.
	Strict bool

	// Workers is the number of pages written concurrently.
	Workers int

	// ChartWidth and ChartHeight are the default picture dimensions.
	ChartWidth  int
	ChartHeight int

	// DBDir is the directory of the build catalog.
	// Defaults to the XDG data directory (~/.local/share/xreport on Linux).
	DBDir string

	// SaveToDB records every build in the catalog.
	SaveToDB bool

	// ServeAddr is the listen address of the report server.
	ServeAddr string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		Workers:     DefaultWorkers,
		ChartWidth:  DefaultChartWidth,
		ChartHeight: DefaultChartHeight,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
		ServeAddr:   DefaultServeAddr,
	}
}

// XDGDataDir returns the XDG data directory for xreport.
// On Linux: ~/.local/share/xreport
// On macOS: ~/Library/Application Support/xreport
// On Windows: %LOCALAPPDATA%\xreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for xreport.
// On Linux: ~/.config/xreport
// On macOS: ~/Library/Application Support/xreport
// On Windows: %APPDATA%\xreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// CatalogPath returns the path of the catalog database inside DBDir.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DBDir, DefaultCatalogFile)
}

// Validate checks if the configuration is valid for a build.
// It returns the first problem found, as a sentinel error usable with
// errors.Is.
func (c *Config) Validate() error {
	if c.Definition == nil {
		return ErrNoDefinition
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return ErrInvalidChartSize
	}

	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDBDir
	}

	return c.Definition.Validate()
}
