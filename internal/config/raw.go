package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWorkspaces struct {
	Count          *int    `yaml:"count"`
	Rows           *int    `yaml:"rows"`
	Cols           *int    `yaml:"cols"`
	StartingCorner *string `yaml:"starting_corner"`
	Vertical       *bool   `yaml:"vertical"`
	Wrap           *bool   `yaml:"wrap"`
}

type RawHotCorners struct {
	Size           *int     `yaml:"size"`
	Enabled        []string `yaml:"enabled"`
	ActionsEnabled *bool    `yaml:"actions_enabled"`
}

type RawTilePreview struct {
	AccentColor  *string  `yaml:"accent_color"`
	Opacity      *float64 `yaml:"opacity"`
	ShowDelayMS  *int     `yaml:"show_delay_ms"`
	ForceOutline *bool    `yaml:"force_outline"`
}

// RawConfig mirrors one YAML file. Nil fields were not set by that file.
type RawConfig struct {
	Include     IncludeList     `yaml:"include"`
	Display     *string         `yaml:"display"`
	LogLevel    *string         `yaml:"log_level"`
	Workspaces  *RawWorkspaces  `yaml:"workspaces"`
	HotCorners  *RawHotCorners  `yaml:"hot_corners"`
	TilePreview *RawTilePreview `yaml:"tile_preview"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Workspaces != nil {
		merged := mergeRawWorkspaces(derefOr(out.Workspaces), *overlay.Workspaces)
		out.Workspaces = &merged
	}
	if overlay.HotCorners != nil {
		merged := mergeRawHotCorners(derefOr(out.HotCorners), *overlay.HotCorners)
		out.HotCorners = &merged
	}
	if overlay.TilePreview != nil {
		merged := mergeRawTilePreview(derefOr(out.TilePreview), *overlay.TilePreview)
		out.TilePreview = &merged
	}
	return out
}

func mergeRawWorkspaces(base, overlay RawWorkspaces) RawWorkspaces {
	if overlay.Count != nil {
		base.Count = overlay.Count
	}
	if overlay.Rows != nil {
		base.Rows = overlay.Rows
	}
	if overlay.Cols != nil {
		base.Cols = overlay.Cols
	}
	if overlay.StartingCorner != nil {
		base.StartingCorner = overlay.StartingCorner
	}
	if overlay.Vertical != nil {
		base.Vertical = overlay.Vertical
	}
	if overlay.Wrap != nil {
		base.Wrap = overlay.Wrap
	}
	return base
}

func mergeRawHotCorners(base, overlay RawHotCorners) RawHotCorners {
	if overlay.Size != nil {
		base.Size = overlay.Size
	}
	// A list replaces the lower layer's list rather than extending it.
	if overlay.Enabled != nil {
		base.Enabled = append([]string(nil), overlay.Enabled...)
	}
	if overlay.ActionsEnabled != nil {
		base.ActionsEnabled = overlay.ActionsEnabled
	}
	return base
}

func mergeRawTilePreview(base, overlay RawTilePreview) RawTilePreview {
	if overlay.AccentColor != nil {
		base.AccentColor = overlay.AccentColor
	}
	if overlay.Opacity != nil {
		base.Opacity = overlay.Opacity
	}
	if overlay.ShowDelayMS != nil {
		base.ShowDelayMS = overlay.ShowDelayMS
	}
	if overlay.ForceOutline != nil {
		base.ForceOutline = overlay.ForceOutline
	}
	return base
}

func derefOr[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
