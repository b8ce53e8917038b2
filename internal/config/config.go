// Package config defines the painicons directory conventions and helpers for
// loading overrides from disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	// ConfigName is the optional override file read from the repository root.
	ConfigName = "painicons.json"

	// DefaultSourceDir holds the per-resolution PNG sources.
	DefaultSourceDir = "assets/icons"
	// DefaultICODir receives the generated Windows containers.
	DefaultICODir = "assets/icons/windows"
	// DefaultICNSDir receives the staged iconsets and generated macOS containers.
	DefaultICNSDir = "assets/icons/macos"
)

// Config aggregates the directory conventions the converter runs with. All
// fields are optional in the override file; empty values fall back to the
// defaults above.
type Config struct {
	SourceDir  string   `json:"sourceDir"`
	ICODir     string   `json:"icoDir"`
	ICNSDir    string   `json:"icnsDir"`
	Identities []string `json:"identities,omitempty"`
}

// Default returns the conventional configuration used when no override file
// exists.
func Default() *Config {
	return &Config{
		SourceDir: DefaultSourceDir,
		ICODir:    DefaultICODir,
		ICNSDir:   DefaultICNSDir,
	}
}

// Load reads the override file at path. A missing file is not an error and
// yields the defaults; a malformed file is.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := &Config{}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills empty fields after a load so callers always receive
// usable paths.
func (c *Config) applyDefaults() {
	d := Default()
	if c.SourceDir == "" {
		c.SourceDir = d.SourceDir
	}
	if c.ICODir == "" {
		c.ICODir = d.ICODir
	}
	if c.ICNSDir == "" {
		c.ICNSDir = d.ICNSDir
	}
}
