// Package config loads the editor settings.
//
// Config file locations (priority order):
//  1. $GRAPHED_CONFIG
//  2. ./graphed.yaml
//  3. ~/.graphedrc
//
// Keys missing from the file keep their defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"graphed/internal/graph"
)

const (
	EnvConfigPath  = "GRAPHED_CONFIG"
	ConfigFileName = "graphed.yaml"
	RCFileName     = ".graphedrc"
)

type Config struct {
	Graph  GraphConfig  `yaml:"graph"`
	Canvas CanvasConfig `yaml:"canvas"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

type GraphConfig struct {
	VertexRadius  float64 `yaml:"vertex_radius"`
	VertexOutline float64 `yaml:"vertex_outline"`
	EdgeBoxSize   float64 `yaml:"edge_box_size"`
	CellRatio     int     `yaml:"cell_ratio"`
	Undirected    bool    `yaml:"undirected"`
}

// CanvasConfig maps terminal cells to drawing units: one cell is CellWidth
// by CellHeight units, matching the pixel size of one glyph in PNG exports.
type CanvasConfig struct {
	CellWidth  int  `yaml:"cell_width"`
	CellHeight int  `yaml:"cell_height"`
	ShowGrid   bool `yaml:"show_grid"`
}

type ExportConfig struct {
	Directory string `yaml:"directory"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	opts := graph.DefaultOptions()
	return &Config{
		Graph: GraphConfig{
			VertexRadius:  opts.VertexRadius,
			VertexOutline: opts.VertexOutline,
			EdgeBoxSize:   opts.EdgeBoxSize,
			CellRatio:     opts.CellRatio,
			Undirected:    opts.Undirected,
		},
		Canvas: CanvasConfig{CellWidth: 8, CellHeight: 16},
		Log:    LogConfig{File: "graphed.log", Level: "info"},
	}
}

// Load finds and loads the config file, or returns defaults if none is found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, path, nil
}

// applyDefaults clamps sizes to their smallest usable value and expands the
// export directory.
func (c *Config) applyDefaults() {
	c.Graph.VertexRadius = max(c.Graph.VertexRadius, 1)
	c.Graph.VertexOutline = max(c.Graph.VertexOutline, 0)
	c.Graph.EdgeBoxSize = max(c.Graph.EdgeBoxSize, 1)
	c.Graph.CellRatio = max(c.Graph.CellRatio, 1)
	c.Canvas.CellWidth = max(c.Canvas.CellWidth, 1)
	c.Canvas.CellHeight = max(c.Canvas.CellHeight, 1)
	if c.Log.File == "" {
		c.Log.File = "graphed.log"
	}

	dir := c.Export.Directory
	if dir == "" {
		return
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	c.Export.Directory = dir
}

// GraphOptions builds the engine options. logger may be nil.
func (c *Config) GraphOptions(logger *slog.Logger) graph.Options {
	return graph.Options{
		VertexRadius:  c.Graph.VertexRadius,
		VertexOutline: c.Graph.VertexOutline,
		EdgeBoxSize:   c.Graph.EdgeBoxSize,
		CellRatio:     c.Graph.CellRatio,
		Undirected:    c.Graph.Undirected,
		Logger:        logger,
	}
}

// LogLevel parses Log.Level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ExportPath returns where an exported file called name is written, creating
// the export directory when one is configured.
func (c *Config) ExportPath(name string) (string, error) {
	if c.Export.Directory == "" {
		return name, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(c.Export.Directory, name), nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// FindConfigPath returns the first config file that exists, or "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, RCFileName)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
