// Package config loads the optional JSON run configuration. Command-line
// flags override the file; the Get* methods fall back to built-in defaults
// for anything left unset, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fcbenten/figures/internal/fsutil"
)

// Defaults used when neither the config file nor a flag sets a value.
const (
	DefaultDataDir = "./data"
	DefaultOutDir  = "./figures"
)

// RunConfig mirrors the -data/-out/-html command-line surface so the same
// settings can live in a checked-in JSON file. Figures, when present,
// restricts a run to the named subset of the catalogue.
type RunConfig struct {
	DataDir *string  `json:"data_dir,omitempty"`
	OutDir  *string  `json:"out_dir,omitempty"`
	HTML    *bool    `json:"html,omitempty"`
	Figures []string `json:"figures,omitempty"`
}

// Empty returns a RunConfig with every field unset.
func Empty() *RunConfig {
	return &RunConfig{}
}

// Load reads a RunConfig from a JSON file. The file must have a .json
// extension and stay under 1MB.
func Load(fsys fsutil.FileSystem, path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *RunConfig) Validate() error {
	if c.DataDir != nil && *c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.OutDir != nil && *c.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	for _, name := range c.Figures {
		if name == "" {
			return fmt.Errorf("figures list contains an empty name")
		}
	}
	return nil
}

// GetDataDir returns the data directory or the default.
func (c *RunConfig) GetDataDir() string {
	if c.DataDir != nil {
		return *c.DataDir
	}
	return DefaultDataDir
}

// GetOutDir returns the output directory or the default.
func (c *RunConfig) GetOutDir() string {
	if c.OutDir != nil {
		return *c.OutDir
	}
	return DefaultOutDir
}

// GetHTML reports whether HTML previews are enabled. Off by default.
func (c *RunConfig) GetHTML() bool {
	if c.HTML != nil {
		return *c.HTML
	}
	return false
}
