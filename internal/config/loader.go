package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default report definition file name.
const DefaultConfigFile = "xreport.yaml"

// ErrConfigNotFound is returned when the definition file does not exist.
var ErrConfigNotFound = errors.New("report definition not found")

// LoadDefinition loads a report definition from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// The returned definition is not validated.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided definition path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	def.BaseDir = filepath.Dir(abs)

	return &def, nil
}

// FindConfigFile searches for the report definition in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for xreport.yaml in the current directory
// 3. Look for xreport.yaml in the XDG config directory
//
// Returns the path to the definition if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
