package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.StartingCorner() != tiling.CornerTopLeft {
		t.Fatalf("expected top-left starting corner, got %v", cfg.StartingCorner())
	}
	if cfg.ShowDelay() != DefaultShowDelayMS*time.Millisecond {
		t.Fatalf("unexpected show delay %v", cfg.ShowDelay())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Workspaces.Count != DefaultWorkspaceCount {
		t.Fatalf("expected default count, got %d", res.Config.Workspaces.Count)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.TilePreview.AccentColor != DefaultAccentColor {
		t.Fatalf("expected default accent, got %q", res.Config.TilePreview.AccentColor)
	}
}

func TestLoadFromPath_Sections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"log_level: debug",
		"workspaces:",
		"  count: 6",
		"  cols: 3",
		"  starting_corner: bottom-right",
		"  vertical: true",
		"hot_corners:",
		"  size: 10",
		"  enabled: [top-left, bottom_right]",
		"  actions_enabled: false",
		"tile_preview:",
		"  accent_color: \"#ff8800\"",
		"  opacity: 0.5",
		"  show_delay_ms: 0",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config

	if cfg.Workspaces.Count != 6 || cfg.Workspaces.Cols != 3 || !cfg.Workspaces.Vertical {
		t.Fatalf("unexpected workspaces %+v", cfg.Workspaces)
	}
	if cfg.StartingCorner() != tiling.CornerBottomRight {
		t.Fatalf("unexpected starting corner %v", cfg.StartingCorner())
	}
	got := cfg.EnabledCorners()
	if len(got) != 2 || got[0] != tiling.CornerTopLeft || got[1] != tiling.CornerBottomRight {
		t.Fatalf("unexpected enabled corners %v", got)
	}
	if cfg.HotCorners.ActionsEnabled {
		t.Fatalf("expected actions disabled")
	}
	theme := cfg.Theme()
	if theme.SelectionAlpha != 0.5 || theme.Accent.Hex() != "#ff8800" {
		t.Fatalf("unexpected theme %+v", theme)
	}
	if cfg.ShowDelay() != 0 {
		t.Fatalf("expected zero delay, got %v", cfg.ShowDelay())
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "workspaces:\n  colums: 2\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "colums") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log_level: info\nworkspaces:\n  count: 0\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "workspaces.count" {
		t.Fatalf("unexpected path %q", verr.Path)
	}
	if verr.Source.Line != 3 {
		t.Fatalf("expected line 3, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), path+":3:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"negative rows", func(c *Config) { c.Workspaces.Rows = -1 }, "workspaces.rows"},
		{"negative cols", func(c *Config) { c.Workspaces.Cols = -2 }, "workspaces.cols"},
		{"starting corner", func(c *Config) { c.Workspaces.StartingCorner = "middle" }, "workspaces.starting_corner"},
		{"corner size", func(c *Config) { c.HotCorners.Size = 0 }, "hot_corners.size"},
		{"unknown corner", func(c *Config) { c.HotCorners.Enabled = []string{"left"} }, "hot_corners.enabled"},
		{"duplicate corner", func(c *Config) { c.HotCorners.Enabled = []string{"top-left", "topleft"} }, "hot_corners.enabled"},
		{"accent", func(c *Config) { c.TilePreview.AccentColor = "blue" }, "tile_preview.accent_color"},
		{"opacity", func(c *Config) { c.TilePreview.Opacity = 1.5 }, "tile_preview.opacity"},
		{"delay", func(c *Config) { c.TilePreview.ShowDelayMS = -1 }, "tile_preview.show_delay_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "workspaces:\n  count: 5\n  rows: 2\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "workspaces:\n  count: 6\n")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include:\n  - config.d\nworkspaces:\n  count: 7\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Workspaces.Count != 7 {
		t.Fatalf("expected count 7, got %d", res.Config.Workspaces.Count)
	}
	if res.Config.Workspaces.Rows != 2 {
		t.Fatalf("expected rows from include, got %d", res.Config.Workspaces.Rows)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected include error with location, got %v", err)
	}
}

func TestExplain_FileAndDefaultSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "tile_preview:\n  opacity: 0.75\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	v, src, err := Explain(res, "tile_preview.opacity")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if v != 0.75 || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected value %v source %+v", v, src)
	}

	v, src, err = Explain(res, "workspaces.count")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if v != DefaultWorkspaceCount || src.Kind != SourceDefault {
		t.Fatalf("unexpected value %v source %+v", v, src)
	}

	for _, p := range Paths() {
		if _, _, err := Explain(res, p); err != nil {
			t.Fatalf("listed path %q not explainable: %v", p, err)
		}
	}
	if _, _, err := Explain(res, "workspaces.bogus"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestSaveToRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Workspaces.Count = 9
	cfg.HotCorners.Enabled = []string{"bottom-left"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Workspaces.Count != 9 || len(res.Config.HotCorners.Enabled) != 1 {
		t.Fatalf("unexpected reloaded config %+v", res.Config)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLogLevel("chatty"); err == nil {
		t.Fatalf("expected error")
	}
}
