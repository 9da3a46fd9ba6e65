// Package mcp exposes the geometry core to MCP clients over stdio.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/screen"
)

const (
	ServerName    = "wmgeom"
	ServerVersion = "0.1.0"
)

// Server answers monitor, workspace and snap queries for one screen.
type Server struct {
	mcpServer *mcpsdk.Server
	screen    *screen.Context
	config    *config.Config
	logger    *slog.Logger
}

// NewServer creates an MCP server over scr. Workspace tools default their
// count to cfg.
func NewServer(scr *screen.Context, cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		screen: scr,
		config: cfg,
		logger: logger.With("component", "mcp"),
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the monitors of the screen with their rectangles and the index of the adjacent monitor in each direction.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "monitor_neighbor",
		Description: "Find the monitor adjacent to a monitor in a direction (up, down, left, right). Found is false when no monitor lies that way.",
	}, s.handleMonitorNeighbor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "monitor_at",
		Description: "Return the monitor containing a point, or the nearest one when the point lies in a gap between monitors.",
	}, s.handleMonitorAt)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "workspace_layout",
		Description: "Lay out the workspaces in a 2-D grid using the configured rows, columns, starting corner and fill orientation. Empty cells are -1.",
	}, s.handleWorkspaceLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "workspace_neighbor",
		Description: "Find the workspace reached from the current one by moving in a direction, honoring the configured wrap setting.",
	}, s.handleWorkspaceNeighbor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_target",
		Description: "Compute the rectangle a window would take when snapped with a mode on the monitor under the pointer. Panels are excluded.",
	}, s.handleSnapTarget)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_snap",
		Description: "Show the tile preview over the snap target for the monitor under the pointer, after an optional delay. Requires a display.",
	}, s.handlePreviewSnap)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_preview",
		Description: "Hide the tile preview and cancel a pending delayed show.",
	}, s.handleHidePreview)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hot_corners",
		Description: "Report the enablement, armed state and trigger rectangle of each hot corner.",
	}, s.handleHotCorners)
}
