package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wmgeom/internal/corners"
	"github.com/1broseidon/wmgeom/internal/preview"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

const (
	DefaultWorkspaceCount = 4
	DefaultShowDelayMS    = 200
	DefaultAccentColor    = "#2ca7f8"
)

// WorkspacesConfig describes the desktop grid.
type WorkspacesConfig struct {
	Count int `yaml:"count"`
	// Rows and Cols fix the grid; 0 derives the dimension from Count.
	Rows           int    `yaml:"rows"`
	Cols           int    `yaml:"cols"`
	StartingCorner string `yaml:"starting_corner"`
	Vertical       bool   `yaml:"vertical"`
	// Wrap lets directional workspace navigation continue past the grid edge.
	Wrap bool `yaml:"wrap"`
}

// HotCornersConfig configures the corner trigger zones.
type HotCornersConfig struct {
	Size           int      `yaml:"size"`
	Enabled        []string `yaml:"enabled"`
	ActionsEnabled bool     `yaml:"actions_enabled"`
}

// TilePreviewConfig configures the snap preview overlay.
type TilePreviewConfig struct {
	AccentColor  string  `yaml:"accent_color"`
	Opacity      float64 `yaml:"opacity"`
	ShowDelayMS  int     `yaml:"show_delay_ms"`
	ForceOutline bool    `yaml:"force_outline"`
}

// Config is the effective wmgeom configuration.
type Config struct {
	Display     string            `yaml:"display,omitempty"`
	LogLevel    string            `yaml:"log_level"`
	Workspaces  WorkspacesConfig  `yaml:"workspaces"`
	HotCorners  HotCornersConfig  `yaml:"hot_corners"`
	TilePreview TilePreviewConfig `yaml:"tile_preview"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Workspaces: WorkspacesConfig{
			Count:          DefaultWorkspaceCount,
			StartingCorner: tiling.CornerTopLeft.String(),
		},
		HotCorners: HotCornersConfig{
			Size:           corners.DefaultSize,
			Enabled:        []string{},
			ActionsEnabled: true,
		},
		TilePreview: TilePreviewConfig{
			AccentColor: DefaultAccentColor,
			Opacity:     preview.DefaultSelectionAlpha,
			ShowDelayMS: DefaultShowDelayMS,
		},
	}
}

// Validate checks every field and reports the first problem with its YAML path.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	w := c.Workspaces
	if w.Count <= 0 {
		return &ValidationError{Path: "workspaces.count", Err: fmt.Errorf("count must be > 0")}
	}
	if w.Rows < 0 {
		return &ValidationError{Path: "workspaces.rows", Err: fmt.Errorf("rows must be >= 0")}
	}
	if w.Cols < 0 {
		return &ValidationError{Path: "workspaces.cols", Err: fmt.Errorf("cols must be >= 0")}
	}
	if _, err := tiling.ParseCorner(w.StartingCorner); err != nil {
		return &ValidationError{Path: "workspaces.starting_corner", Err: err}
	}

	hc := c.HotCorners
	if hc.Size <= 0 {
		return &ValidationError{Path: "hot_corners.size", Err: fmt.Errorf("size must be > 0")}
	}
	seen := make(map[tiling.Corner]bool, len(hc.Enabled))
	for _, name := range hc.Enabled {
		corner, err := tiling.ParseCorner(name)
		if err != nil {
			return &ValidationError{Path: "hot_corners.enabled", Err: err}
		}
		if seen[corner] {
			return &ValidationError{Path: "hot_corners.enabled", Err: fmt.Errorf("corner %q listed twice", corner)}
		}
		seen[corner] = true
	}

	tp := c.TilePreview
	if _, err := preview.ParseColor(tp.AccentColor, 1); err != nil {
		return &ValidationError{Path: "tile_preview.accent_color", Err: err}
	}
	if tp.Opacity <= 0 || tp.Opacity > 1 {
		return &ValidationError{Path: "tile_preview.opacity", Err: fmt.Errorf("opacity must be in (0, 1]")}
	}
	if tp.ShowDelayMS < 0 {
		return &ValidationError{Path: "tile_preview.show_delay_ms", Err: fmt.Errorf("show_delay_ms must be >= 0")}
	}
	return nil
}

// StartingCorner returns the parsed workspace starting corner.
func (c *Config) StartingCorner() tiling.Corner {
	corner, err := tiling.ParseCorner(c.Workspaces.StartingCorner)
	if err != nil {
		return tiling.CornerTopLeft
	}
	return corner
}

// EnabledCorners returns the hot corners to arm, skipping invalid names.
func (c *Config) EnabledCorners() []tiling.Corner {
	out := make([]tiling.Corner, 0, len(c.HotCorners.Enabled))
	for _, name := range c.HotCorners.Enabled {
		if corner, err := tiling.ParseCorner(name); err == nil {
			out = append(out, corner)
		}
	}
	return out
}

// Theme builds the preview theme from the tile_preview section.
func (c *Config) Theme() preview.Theme {
	accent, err := preview.ParseColor(c.TilePreview.AccentColor, 1)
	if err != nil {
		accent = preview.DefaultAccent
	}
	return preview.Theme{Accent: accent, SelectionAlpha: c.TilePreview.Opacity}
}

// ShowDelay is the tile preview show delay.
func (c *Config) ShowDelay() time.Duration {
	return time.Duration(c.TilePreview.ShowDelayMS) * time.Millisecond
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates the configuration and writes it to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
