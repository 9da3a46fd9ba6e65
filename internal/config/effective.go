package config

import "fmt"

// ValidationError ties a configuration problem to its YAML path and, when the
// value came from a file, the line that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	if w := raw.Workspaces; w != nil {
		cfg.Workspaces.Count = derefInt(w.Count, cfg.Workspaces.Count)
		cfg.Workspaces.Rows = derefInt(w.Rows, cfg.Workspaces.Rows)
		cfg.Workspaces.Cols = derefInt(w.Cols, cfg.Workspaces.Cols)
		if w.StartingCorner != nil {
			cfg.Workspaces.StartingCorner = *w.StartingCorner
		}
		cfg.Workspaces.Vertical = derefBool(w.Vertical, cfg.Workspaces.Vertical)
		cfg.Workspaces.Wrap = derefBool(w.Wrap, cfg.Workspaces.Wrap)
	}

	if hc := raw.HotCorners; hc != nil {
		cfg.HotCorners.Size = derefInt(hc.Size, cfg.HotCorners.Size)
		if hc.Enabled != nil {
			cfg.HotCorners.Enabled = append([]string(nil), hc.Enabled...)
		}
		cfg.HotCorners.ActionsEnabled = derefBool(hc.ActionsEnabled, cfg.HotCorners.ActionsEnabled)
	}

	if tp := raw.TilePreview; tp != nil {
		if tp.AccentColor != nil {
			cfg.TilePreview.AccentColor = *tp.AccentColor
		}
		if tp.Opacity != nil {
			cfg.TilePreview.Opacity = *tp.Opacity
		}
		cfg.TilePreview.ShowDelayMS = derefInt(tp.ShowDelayMS, cfg.TilePreview.ShowDelayMS)
		cfg.TilePreview.ForceOutline = derefBool(tp.ForceOutline, cfg.TilePreview.ForceOutline)
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
