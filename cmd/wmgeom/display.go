package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/corners"
	"github.com/1broseidon/wmgeom/internal/preview"
	"github.com/1broseidon/wmgeom/internal/screen"
	"github.com/1broseidon/wmgeom/internal/tiling"
	"github.com/1broseidon/wmgeom/internal/x11"
)

// loadConfig reads path, or the default location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// newLogger writes text logs to stderr; stdout is reserved for command
// output and the MCP stdio transport.
func newLogger(cfg *config.Config) *slog.Logger {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using info\n", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func workspaceOptions(cfg *config.Config) screen.WorkspaceOptions {
	return screen.WorkspaceOptions{
		Rows:           cfg.Workspaces.Rows,
		Cols:           cfg.Workspaces.Cols,
		StartingCorner: cfg.StartingCorner(),
		Vertical:       cfg.Workspaces.Vertical,
		Wrap:           cfg.Workspaces.Wrap,
	}
}

// display is a live X connection plus the geometry state of its default
// screen.
type display struct {
	conn    *x11.Connection
	screen  *screen.Context
	corners *x11.CornerWindows
	logger  *slog.Logger
}

// openDisplay connects to the configured display and builds the screen
// context: monitors from RandR, work areas from panel struts, hot corner
// windows and a lazily created tile preview.
func openDisplay(cfg *config.Config, logger *slog.Logger) (*display, error) {
	conn, err := x11.NewConnection(cfg.Display, logger)
	if err != nil {
		return nil, err
	}

	d := &display{conn: conn, logger: logger}
	d.corners = conn.NewCornerWindows(d.handleCrossing)

	composited := conn.CompositingAvailable() && !cfg.TilePreview.ForceOutline
	_, hasARGB := conn.AlphaVisual()
	d.screen = screen.New(screen.Options{
		Number:     conn.ScreenNumber(),
		Workspaces: workspaceOptions(cfg),
		CornerSize: cfg.HotCorners.Size,
		Corners:    d.corners,
		WorkArea:   conn.WorkArea,
		Logger:     logger,
		Preview: func() (*preview.Overlay, error) {
			return preview.New(preview.Options{
				Composited:  composited,
				AlphaVisual: hasARGB,
				Theme:       cfg.Theme(),
				Factory:     conn,
				Stacker:     conn,
				Timestamp:   conn.Timestamp,
				Logger:      logger,
			})
		},
	})

	if err := d.refreshMonitors(); err != nil {
		d.Close()
		return nil, err
	}
	d.applyCorners(cfg)
	return d, nil
}

func (d *display) refreshMonitors() error {
	set, err := d.conn.GetMonitors()
	if err != nil {
		return fmt.Errorf("failed to query monitors: %w", err)
	}
	return d.screen.SetMonitors(set)
}

// applyCorners enables exactly the configured corners and places their
// trigger windows above everything else.
func (d *display) applyCorners(cfg *config.Config) {
	m := d.screen.Corners()
	m.EnableActions(cfg.HotCorners.ActionsEnabled)
	enabled := make(map[tiling.Corner]bool)
	for _, c := range cfg.EnabledCorners() {
		enabled[c] = true
	}
	for _, c := range tiling.Corners {
		m.EnableCorner(c, enabled[c])
	}
	if err := m.Update(corners.NewUpdateMask(corners.UpdatePosition, corners.UpdateStack)); err != nil {
		d.logger.Warn("failed to place corner windows", "error", err)
	}
}

func (d *display) handleCrossing(corner tiling.Corner, entered bool) {
	m := d.screen.Corners()
	if !entered {
		m.Leave(corner)
		return
	}
	if m.Enter(corner) {
		d.logger.Info("hot corner fired", "corner", corner)
	}
}

// Close tears down the preview, the corner windows and the connection.
func (d *display) Close() {
	if d.screen != nil {
		if err := d.screen.Close(); err != nil {
			d.logger.Warn("screen close failed", "error", err)
		}
	}
	d.corners.Destroy()
	d.conn.Close()
}
