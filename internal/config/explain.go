package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	display
//	log_level
//	workspaces.{count,rows,cols,starting_corner,vertical,wrap}
//	hot_corners.{size,enabled,actions_enabled}
//	tile_preview.{accent_color,opacity,show_delay_ms,force_outline}
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

// Paths lists every path Explain accepts, in file order.
func Paths() []string {
	return []string{
		"display",
		"log_level",
		"workspaces.count",
		"workspaces.rows",
		"workspaces.cols",
		"workspaces.starting_corner",
		"workspaces.vertical",
		"workspaces.wrap",
		"hot_corners.size",
		"hot_corners.enabled",
		"hot_corners.actions_enabled",
		"tile_preview.accent_color",
		"tile_preview.opacity",
		"tile_preview.show_delay_ms",
		"tile_preview.force_outline",
	}
}

func lookupValue(cfg *Config, path string) (any, error) {
	section, key, _ := strings.Cut(path, ".")
	unknown := fmt.Errorf("unknown path: %s", path)

	switch section {
	case "display":
		if key != "" {
			return nil, unknown
		}
		return cfg.Display, nil
	case "log_level":
		if key != "" {
			return nil, unknown
		}
		return cfg.LogLevel, nil
	case "workspaces":
		w := cfg.Workspaces
		switch key {
		case "count":
			return w.Count, nil
		case "rows":
			return w.Rows, nil
		case "cols":
			return w.Cols, nil
		case "starting_corner":
			return w.StartingCorner, nil
		case "vertical":
			return w.Vertical, nil
		case "wrap":
			return w.Wrap, nil
		}
	case "hot_corners":
		hc := cfg.HotCorners
		switch key {
		case "size":
			return hc.Size, nil
		case "enabled":
			return hc.Enabled, nil
		case "actions_enabled":
			return hc.ActionsEnabled, nil
		}
	case "tile_preview":
		tp := cfg.TilePreview
		switch key {
		case "accent_color":
			return tp.AccentColor, nil
		case "opacity":
			return tp.Opacity, nil
		case "show_delay_ms":
			return tp.ShowDelayMS, nil
		case "force_outline":
			return tp.ForceOutline, nil
		}
	}
	return nil, unknown
}
