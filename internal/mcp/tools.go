package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/screen"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

func (s *Server) monitorInfo(info monitor.Info, withNeighbors bool) MonitorInfo {
	out := MonitorInfo{Index: info.Index, Name: info.Name, Rect: rectFrom(info.Rect)}
	if !withNeighbors {
		return out
	}
	for _, dir := range []tiling.Direction{tiling.DirUp, tiling.DirDown, tiling.DirLeft, tiling.DirRight} {
		if n, ok := s.screen.MonitorNeighbor(info.Index, dir); ok {
			if out.Neighbors == nil {
				out.Neighbors = make(map[string]int)
			}
			out.Neighbors[dir.String()] = n.Index
		}
	}
	return out
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	set := s.screen.Monitors()
	out := ListMonitorsOutput{
		Bounds:   rectFrom(s.screen.Bounds()),
		Monitors: make([]MonitorInfo, 0, set.Len()),
	}
	for _, info := range set.All() {
		out.Monitors = append(out.Monitors, s.monitorInfo(info, true))
	}
	return nil, out, nil
}

func (s *Server) handleMonitorNeighbor(_ context.Context, _ *mcpsdk.CallToolRequest, args MonitorNeighborInput) (*mcpsdk.CallToolResult, MonitorNeighborOutput, error) {
	dir, err := tiling.ParseDirection(args.Direction)
	if err != nil {
		return nil, MonitorNeighborOutput{}, err
	}
	if _, ok := s.screen.Monitors().Get(args.From); !ok {
		return nil, MonitorNeighborOutput{}, fmt.Errorf("%w: no monitor %d", tiling.ErrInvalidArgument, args.From)
	}

	n, ok := s.screen.MonitorNeighbor(args.From, dir)
	if !ok {
		return nil, MonitorNeighborOutput{}, nil
	}
	info := s.monitorInfo(n, false)
	return nil, MonitorNeighborOutput{Found: true, Monitor: &info}, nil
}

func (s *Server) handleMonitorAt(_ context.Context, _ *mcpsdk.CallToolRequest, args MonitorAtInput) (*mcpsdk.CallToolResult, MonitorAtOutput, error) {
	info, ok := s.screen.CurrentMonitor(tiling.Point{X: args.X, Y: args.Y})
	if !ok {
		return nil, MonitorAtOutput{}, screen.ErrNoMonitors
	}
	return nil, MonitorAtOutput{Monitor: s.monitorInfo(info, false)}, nil
}

func (s *Server) workspaceCount(count *int) int {
	if count != nil {
		return *count
	}
	return s.config.Workspaces.Count
}

func (s *Server) handleWorkspaceLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceLayoutInput) (*mcpsdk.CallToolResult, WorkspaceLayoutOutput, error) {
	layout, err := s.screen.WorkspaceLayout(s.workspaceCount(args.Count), args.Current)
	if err != nil {
		return nil, WorkspaceLayoutOutput{}, err
	}

	grid := make([][]int, layout.Rows)
	for r := range grid {
		grid[r] = append([]int(nil), layout.Grid[r*layout.Cols:(r+1)*layout.Cols]...)
	}
	return nil, WorkspaceLayoutOutput{
		Rows:       layout.Rows,
		Cols:       layout.Cols,
		Grid:       grid,
		CurrentRow: layout.CurrentRow,
		CurrentCol: layout.CurrentCol,
	}, nil
}

func (s *Server) handleWorkspaceNeighbor(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceNeighborInput) (*mcpsdk.CallToolResult, WorkspaceNeighborOutput, error) {
	dir, err := tiling.ParseDirection(args.Direction)
	if err != nil {
		return nil, WorkspaceNeighborOutput{}, err
	}
	idx, ok, err := s.screen.WorkspaceNeighbor(s.workspaceCount(args.Count), args.Current, dir)
	if err != nil {
		return nil, WorkspaceNeighborOutput{}, err
	}
	return nil, WorkspaceNeighborOutput{Found: ok, Workspace: idx}, nil
}

func (s *Server) handleSnapTarget(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapTargetInput) (*mcpsdk.CallToolResult, SnapTargetOutput, error) {
	mode, err := tiling.ParseSnapMode(args.Mode)
	if err != nil {
		return nil, SnapTargetOutput{}, err
	}
	mon, target, err := s.screen.SnapTarget(tiling.Point{X: args.X, Y: args.Y}, mode)
	if err != nil {
		return nil, SnapTargetOutput{}, err
	}
	return nil, SnapTargetOutput{Monitor: mon.Index, Target: rectFrom(target)}, nil
}

func (s *Server) handlePreviewSnap(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapTargetInput) (*mcpsdk.CallToolResult, SnapTargetOutput, error) {
	mode, err := tiling.ParseSnapMode(args.Mode)
	if err != nil {
		return nil, SnapTargetOutput{}, err
	}
	delay := s.config.ShowDelay()
	if args.DelayMS != nil {
		if *args.DelayMS < 0 {
			return nil, SnapTargetOutput{}, fmt.Errorf("%w: delay_ms must be >= 0", tiling.ErrInvalidArgument)
		}
		delay = time.Duration(*args.DelayMS) * time.Millisecond
	}

	p := tiling.Point{X: args.X, Y: args.Y}
	mon, target, err := s.screen.SnapPreview(p, mode, delay)
	if err != nil {
		s.logger.Warn("tile preview failed", "mode", mode, "error", err)
		return nil, SnapTargetOutput{}, err
	}
	s.logger.Debug("tile preview requested", "mode", mode, "target", target, "delay", delay)
	return nil, SnapTargetOutput{Monitor: mon.Index, Target: rectFrom(target)}, nil
}

func (s *Server) handleHidePreview(_ context.Context, _ *mcpsdk.CallToolRequest, _ HidePreviewInput) (*mcpsdk.CallToolResult, PreviewStateOutput, error) {
	if err := s.screen.TilePreviewHide(); err != nil {
		return nil, PreviewStateOutput{}, err
	}
	st, ok := s.screen.TilePreviewState()
	if !ok {
		return nil, PreviewStateOutput{}, nil
	}
	return nil, PreviewStateOutput{
		Created:  true,
		Visible:  st.Visible,
		Rect:     rectFrom(st.Rect),
		HasAlpha: st.HasAlpha,
		Color:    st.Color.String(),
	}, nil
}

func (s *Server) handleHotCorners(_ context.Context, _ *mcpsdk.CallToolRequest, _ HotCornersInput) (*mcpsdk.CallToolResult, HotCornersOutput, error) {
	m := s.screen.Corners()
	out := HotCornersOutput{ActionsEnabled: m.ActionsEnabled()}
	for _, corner := range tiling.Corners {
		st := m.State(corner)
		out.Corners = append(out.Corners, HotCornerInfo{
			Corner:        corner.String(),
			Enabled:       st.Enabled,
			ActionEnabled: st.ActionEnabled,
			TriggerRect:   rectFrom(st.TriggerRect),
		})
	}
	return nil, out, nil
}
