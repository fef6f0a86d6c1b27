// =============================================================================
// OpenSong to ProPresenter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has
// a default, so the converter runs without any file at all; the file only
// exists to tweak output naming and logging.
//
// EXAMPLE (config.yaml):
//   tool_dir: ProPresenter
//   report_file: sectionMarks.txt
//   write_workbook: true
//   on_collision: suffix
//   log_level: info
//
// NOTE:
//   The section-mark table is built in and is NOT configurable here.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// COLLISION POLICIES
// =============================================================================

// Collision policies decide what happens when two songs in one batch map to
// the same output file.
const (
	// CollisionSuffix writes the later song as "Name (2).txt", "Name (3).txt", ...
	CollisionSuffix = "suffix"

	// CollisionOverwrite lets the later song replace the earlier one.
	CollisionOverwrite = "overwrite"

	// CollisionError fails the later song and keeps the earlier one.
	CollisionError = "error"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the converter settings.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ToolDir is the subdirectory of the songs directory that receives the
	// converted text files.
	// Default: "ProPresenter"
	ToolDir string `yaml:"tool_dir"`

	// ReportFile is the name of the section-mark report written to the root
	// of the songs directory.
	// Default: "sectionMarks.txt"
	ReportFile string `yaml:"report_file"`

	// WorkbookFile is the name of the optional XLSX section-mark report.
	// Default: "sectionMarks.xlsx"
	WorkbookFile string `yaml:"workbook_file"`

	// WriteWorkbook enables the XLSX report next to the text report.
	// Default: false
	WriteWorkbook bool `yaml:"write_workbook"`

	// OnCollision is one of "suffix", "overwrite" or "error".
	// Default: "suffix"
	OnCollision string `yaml:"on_collision"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`
}

// Default returns a MainConfig with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path returns
//     the defaults without touching the filesystem.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// ParseMainConfig parses YAML configuration data, applies defaults and
// validates the result.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.ToolDir == "" {
		config.ToolDir = "ProPresenter"
	}
	if config.ReportFile == "" {
		config.ReportFile = "sectionMarks.txt"
	}
	if config.WorkbookFile == "" {
		config.WorkbookFile = "sectionMarks.xlsx"
	}
	if config.OnCollision == "" {
		config.OnCollision = CollisionSuffix
	}
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	config.OnCollision = strings.ToLower(config.OnCollision)
	config.LogLevel = strings.ToLower(config.LogLevel)
}

// validateMainConfig validates the configuration.
func validateMainConfig(config *MainConfig) error {
	// Output names must stay directly inside the songs directory.
	names := map[string]string{
		"tool_dir":      config.ToolDir,
		"report_file":   config.ReportFile,
		"workbook_file": config.WorkbookFile,
	}
	for key, name := range names {
		if name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("%s must be a plain name, got %q", key, name)
		}
	}

	switch config.OnCollision {
	case CollisionSuffix, CollisionOverwrite, CollisionError:
	default:
		return fmt.Errorf("on_collision must be suffix, overwrite or error, got %q", config.OnCollision)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", config.LogLevel)
	}

	return nil
}
