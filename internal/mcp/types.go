package mcp

import "github.com/1broseidon/wmgeom/internal/tiling"

// Rect is a rectangle in root window coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func rectFrom(r tiling.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// MonitorInfo describes one monitor.
type MonitorInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Rect  Rect   `json:"rect"`
	// Neighbors maps a direction to the adjacent monitor index.
	Neighbors map[string]int `json:"neighbors,omitempty"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Bounds   Rect          `json:"bounds"`
	Monitors []MonitorInfo `json:"monitors"`
}

// MonitorNeighborInput is the input for the monitor_neighbor tool.
type MonitorNeighborInput struct {
	From      int    `json:"from" jsonschema:"Index of the starting monitor"`
	Direction string `json:"direction" jsonschema:"One of up, down, left, right"`
}

// MonitorNeighborOutput is the output for the monitor_neighbor tool.
type MonitorNeighborOutput struct {
	Found   bool         `json:"found"`
	Monitor *MonitorInfo `json:"monitor,omitempty"`
}

// MonitorAtInput is the input for the monitor_at tool.
type MonitorAtInput struct {
	X int `json:"x" jsonschema:"Root window X coordinate"`
	Y int `json:"y" jsonschema:"Root window Y coordinate"`
}

// MonitorAtOutput is the output for the monitor_at tool.
type MonitorAtOutput struct {
	Monitor MonitorInfo `json:"monitor"`
}

// WorkspaceLayoutInput is the input for the workspace_layout tool.
type WorkspaceLayoutInput struct {
	Count   *int `json:"count,omitempty" jsonschema:"Number of workspaces (default: workspaces.count from config)"`
	Current int  `json:"current,omitempty" jsonschema:"Index of the current workspace (default: 0)"`
}

// WorkspaceLayoutOutput is the output for the workspace_layout tool.
type WorkspaceLayoutOutput struct {
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Grid       [][]int `json:"grid"`
	CurrentRow int     `json:"current_row"`
	CurrentCol int     `json:"current_col"`
}

// WorkspaceNeighborInput is the input for the workspace_neighbor tool.
type WorkspaceNeighborInput struct {
	Count     *int   `json:"count,omitempty" jsonschema:"Number of workspaces (default: workspaces.count from config)"`
	Current   int    `json:"current" jsonschema:"Index of the current workspace"`
	Direction string `json:"direction" jsonschema:"One of up, down, left, right"`
}

// WorkspaceNeighborOutput is the output for the workspace_neighbor tool.
type WorkspaceNeighborOutput struct {
	Found     bool `json:"found"`
	Workspace int  `json:"workspace"`
}

// SnapTargetInput is the input for the snap_target and preview_snap tools.
type SnapTargetInput struct {
	X    int    `json:"x" jsonschema:"Pointer X coordinate"`
	Y    int    `json:"y" jsonschema:"Pointer Y coordinate"`
	Mode string `json:"mode" jsonschema:"Snap mode: maximize, left-half, right-half, top-half, bottom-half, top-left, top-right, bottom-left, bottom-right"`
	// DelayMS is only used by preview_snap.
	DelayMS *int `json:"delay_ms,omitempty" jsonschema:"Preview show delay in milliseconds (default: tile_preview.show_delay_ms). Only used by preview_snap."`
}

// SnapTargetOutput is the output for the snap_target and preview_snap tools.
type SnapTargetOutput struct {
	Monitor int  `json:"monitor"`
	Target  Rect `json:"target"`
}

// HidePreviewInput is the input for the hide_preview tool.
type HidePreviewInput struct{}

// PreviewStateOutput reports the tile preview state.
type PreviewStateOutput struct {
	Created  bool   `json:"created"`
	Visible  bool   `json:"visible"`
	Rect     Rect   `json:"rect"`
	HasAlpha bool   `json:"has_alpha"`
	Color    string `json:"color,omitempty"`
}

// HotCornersInput is the input for the hot_corners tool.
type HotCornersInput struct{}

// HotCornerInfo describes one corner.
type HotCornerInfo struct {
	Corner        string `json:"corner"`
	Enabled       bool   `json:"enabled"`
	ActionEnabled bool   `json:"action_enabled"`
	TriggerRect   Rect   `json:"trigger_rect"`
}

// HotCornersOutput is the output for the hot_corners tool.
type HotCornersOutput struct {
	ActionsEnabled bool            `json:"actions_enabled"`
	Corners        []HotCornerInfo `json:"corners"`
}
