// SPDX-License-Identifier: MIT

// Package config handles engine configuration files.
//
// A configuration has three sections: mesh (dimensions, smoothing policy,
// distortion check), logging (level, file and rotation) and store (the
// snapshot database). Files are YAML (.yaml, .yml) or TOML (.toml); fields
// missing from a file keep their defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmesh/tria"
)

// Config holds all engine settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Store   StoreConfig   `yaml:"store" toml:"store"`
}

// MeshConfig holds the triangulation settings.
type MeshConfig struct {
	Dim             int      `yaml:"dim" toml:"dim"`
	SpaceDim        int      `yaml:"spacedim" toml:"spacedim"`
	Smoothing       []string `yaml:"smoothing" toml:"smoothing"` // bit or group names
	CheckDistortion bool     `yaml:"check_distortion" toml:"check_distortion"`
	VertexTolerance float64  `yaml:"vertex_tolerance" toml:"vertex_tolerance"`
}

// LoggingConfig holds logging settings. An empty File disables file output.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// StoreConfig holds the snapshot database settings.
type StoreConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Format string `yaml:"format" toml:"format"` // yaml or json
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Dim:       2,
			SpaceDim:  2,
			Smoothing: []string{"none"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Store: StoreConfig{
			Path:   "meshes.db",
			Format: "yaml",
		},
	}
}

// ParseSmoothing combines smoothing bit and group names, as accepted by
// tria.ParseMeshSmoothing, into one policy. An empty list means none.
func ParseSmoothing(names []string) (tria.MeshSmoothing, error) {
	var s tria.MeshSmoothing
	for _, n := range names {
		bits, err := tria.ParseMeshSmoothing(n)
		if err != nil {
			return 0, err
		}
		s |= bits
	}

	return s, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	m := c.Mesh
	if m.Dim < 1 || m.Dim > 3 || m.SpaceDim < m.Dim || m.SpaceDim > 3 {
		return fmt.Errorf("mesh: dim=%d spacedim=%d: want 1 <= dim <= spacedim <= 3", m.Dim, m.SpaceDim)
	}
	if m.VertexTolerance < 0 {
		return fmt.Errorf("mesh: negative vertex_tolerance %g", m.VertexTolerance)
	}
	if _, err := ParseSmoothing(m.Smoothing); err != nil {
		return fmt.Errorf("mesh: smoothing: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Store.Format) {
	case "yaml", "json":
	default:
		return fmt.Errorf("store: unknown format %q", c.Store.Format)
	}

	return nil
}

// Options translates the mesh section into triangulation options.
func (c *Config) Options() ([]tria.Option, error) {
	s, err := ParseSmoothing(c.Mesh.Smoothing)
	if err != nil {
		return nil, err
	}
	opts := []tria.Option{
		tria.WithSmoothing(s),
		tria.WithDistortionCheck(c.Mesh.CheckDistortion),
	}
	if c.Mesh.VertexTolerance > 0 {
		opts = append(opts, tria.WithVertexTolerance(c.Mesh.VertexTolerance))
	}

	return opts, nil
}
