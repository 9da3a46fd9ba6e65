// Package screen bundles the geometry state of one X screen: its monitor
// layout, workspace grid options, hot corners and the tile preview.
package screen

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/wmgeom/internal/corners"
	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/preview"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// ErrNoMonitors is returned when a query needs monitors and none are known.
var ErrNoMonitors = errors.New("no monitors")

// WorkspaceOptions controls how workspaces are laid out in the grid.
type WorkspaceOptions struct {
	Rows           int
	Cols           int
	StartingCorner tiling.Corner
	Vertical       bool
	Wrap           bool
}

// PreviewFactory builds the tile preview on first use.
type PreviewFactory func() (*preview.Overlay, error)

// WorkAreaFunc returns the part of a monitor not reserved by panels.
type WorkAreaFunc func(mon tiling.Rect) (tiling.Rect, error)

// Options configures a Context.
type Options struct {
	Number     int
	Workspaces WorkspaceOptions
	CornerSize int
	Corners    corners.Surfaces
	Preview    PreviewFactory
	WorkArea   WorkAreaFunc
	Logger     *slog.Logger
}

// Context is the per-screen geometry state.
type Context struct {
	number int
	logger *slog.Logger

	monitors    atomic.Pointer[monitor.Set]
	lastMonitor atomic.Int64

	wsMu       sync.RWMutex
	workspaces WorkspaceOptions

	corners  *corners.Manager
	workArea WorkAreaFunc

	previewMu  sync.Mutex
	preview    *preview.Overlay
	newPreview PreviewFactory
	theme      *preview.Theme
	closed     bool
}

// New creates a context with an empty monitor set.
func New(opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("screen", opts.Number)

	c := &Context{
		number:     opts.Number,
		logger:     logger,
		workspaces: opts.Workspaces,
		newPreview: opts.Preview,
		workArea:   opts.WorkArea,
	}
	c.monitors.Store(monitor.NewSet(nil))
	c.lastMonitor.Store(-1)
	c.corners = corners.NewManager(c, corners.Config{
		Size:     opts.CornerSize,
		Surfaces: opts.Corners,
		Logger:   logger,
	})
	return c
}

// Number is the X screen number.
func (c *Context) Number() int {
	return c.number
}

// Monitors returns the current monitor snapshot.
func (c *Context) Monitors() *monitor.Set {
	return c.monitors.Load()
}

// SetMonitors replaces the monitor snapshot and moves the corner trigger
// zones to the new screen edges.
func (c *Context) SetMonitors(set *monitor.Set) error {
	if set == nil {
		set = monitor.NewSet(nil)
	}
	c.monitors.Store(set)
	c.lastMonitor.Store(-1)
	c.logger.Info("monitors changed", "count", set.Len(), "bounds", set.Bounds())
	return c.corners.Update(corners.NewUpdateMask(corners.UpdatePosition))
}

// Bounds is the screen rectangle: origin to the far edge of the monitors.
func (c *Context) Bounds() tiling.Rect {
	b := c.Monitors().Bounds()
	if b.Empty() {
		return tiling.Rect{}
	}
	return tiling.Rect{Width: b.Right(), Height: b.Bottom()}
}

// CurrentMonitor returns the monitor holding the pointer at p. The last hit is
// checked first since the pointer rarely changes monitor between queries.
func (c *Context) CurrentMonitor(p tiling.Point) (monitor.Info, bool) {
	set := c.Monitors()
	if last := int(c.lastMonitor.Load()); last >= 0 {
		if info, ok := set.Get(last); ok && info.Rect.Contains(p) {
			return info, true
		}
	}
	info, ok := set.ContainingPoint(p)
	if !ok {
		return monitor.Info{}, false
	}
	c.lastMonitor.Store(int64(info.Index))
	return info, true
}

// MonitorNeighbor returns the monitor adjacent to from in dir.
func (c *Context) MonitorNeighbor(from int, dir tiling.Direction) (monitor.Info, bool) {
	return c.Monitors().Neighbor(from, dir)
}

// WorkspaceOptions returns the workspace grid options.
func (c *Context) WorkspaceOptions() WorkspaceOptions {
	c.wsMu.RLock()
	defer c.wsMu.RUnlock()
	return c.workspaces
}

// SetWorkspaceOptions replaces the workspace grid options, e.g. after the
// pager changed _NET_DESKTOP_LAYOUT.
func (c *Context) SetWorkspaceOptions(opts WorkspaceOptions) {
	c.wsMu.Lock()
	c.workspaces = opts
	c.wsMu.Unlock()
	c.logger.Debug("workspace options changed", "rows", opts.Rows, "cols", opts.Cols, "corner", opts.StartingCorner, "vertical", opts.Vertical)
}

// WorkspaceLayout lays out n workspaces with current highlighted.
func (c *Context) WorkspaceLayout(n, current int) (tiling.WorkspaceLayout, error) {
	opts := c.WorkspaceOptions()
	return tiling.CalculateWorkspaceLayoutWithGrid(n, current, opts.Rows, opts.Cols, opts.StartingCorner, opts.Vertical)
}

// WorkspaceNeighbor returns the workspace reached from current by moving in
// dir, honoring the wrap option.
func (c *Context) WorkspaceNeighbor(n, current int, dir tiling.Direction) (int, bool, error) {
	layout, err := c.WorkspaceLayout(n, current)
	if err != nil {
		return tiling.NoWorkspace, false, err
	}
	idx, ok := layout.Neighbor(dir, c.WorkspaceOptions().Wrap)
	return idx, ok, nil
}

// Corners is the hot corner manager of this screen.
func (c *Context) Corners() *corners.Manager {
	return c.corners
}

// TilePreviewUpdate shows the tile preview at rect after delay. The preview
// surface is created on the first call.
func (c *Context) TilePreviewUpdate(rect tiling.Rect, delay time.Duration) error {
	o, err := c.ensurePreview()
	if err != nil {
		return err
	}
	return o.ShowAfter(rect, delay)
}

// SnapTarget returns the monitor under pointer and the rectangle a window
// snapped with mode would take on it. Panels are excluded when a work area
// source is configured.
func (c *Context) SnapTarget(pointer tiling.Point, mode tiling.SnapMode) (monitor.Info, tiling.Rect, error) {
	mon, ok := c.CurrentMonitor(pointer)
	if !ok {
		return monitor.Info{}, tiling.Rect{}, ErrNoMonitors
	}

	area := mon.Rect
	if c.workArea != nil {
		wa, err := c.workArea(mon.Rect)
		if err != nil {
			c.logger.Debug("work area unavailable, using full monitor", "monitor", mon.Index, "error", err)
		} else {
			area = wa
		}
	}

	target, err := tiling.SnapTarget(area, mode)
	if err != nil {
		return mon, tiling.Rect{}, err
	}
	return mon, target, nil
}

// SnapPreview previews the snap target for mode on the monitor under pointer
// and returns that monitor and target.
func (c *Context) SnapPreview(pointer tiling.Point, mode tiling.SnapMode, delay time.Duration) (monitor.Info, tiling.Rect, error) {
	mon, target, err := c.SnapTarget(pointer, mode)
	if err != nil {
		return mon, tiling.Rect{}, err
	}
	return mon, target, c.TilePreviewUpdate(target, delay)
}

// TilePreviewHide hides the preview. It is a no-op before the first update.
func (c *Context) TilePreviewHide() error {
	c.previewMu.Lock()
	o := c.preview
	c.previewMu.Unlock()

	if o == nil {
		return nil
	}
	return o.Hide()
}

// TilePreviewState reports the preview state, false if none was created.
func (c *Context) TilePreviewState() (preview.State, bool) {
	c.previewMu.Lock()
	o := c.preview
	c.previewMu.Unlock()

	if o == nil {
		return preview.State{}, false
	}
	return o.State(), true
}

// ThemeChanged forwards new theme values to the preview. The theme is kept
// and applied when the preview is created later.
func (c *Context) ThemeChanged(theme preview.Theme) error {
	c.previewMu.Lock()
	c.theme = &theme
	o := c.preview
	c.previewMu.Unlock()

	if o == nil {
		return nil
	}
	return o.SetTheme(theme)
}

// Close destroys the preview, including one shown mid-drag, and disables
// every corner.
func (c *Context) Close() error {
	c.previewMu.Lock()
	o := c.preview
	c.preview = nil
	c.closed = true
	c.previewMu.Unlock()

	var errs []error
	if o != nil {
		if err := o.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, corner := range tiling.Corners {
		c.corners.EnableCorner(corner, false)
	}
	c.logger.Debug("screen closed")
	return errors.Join(errs...)
}

func (c *Context) ensurePreview() (*preview.Overlay, error) {
	c.previewMu.Lock()
	defer c.previewMu.Unlock()

	if c.closed {
		return nil, preview.ErrDestroyed
	}
	if c.preview != nil {
		return c.preview, nil
	}
	if c.newPreview == nil {
		return nil, fmt.Errorf("screen %d: no tile preview factory", c.number)
	}
	o, err := c.newPreview()
	if err != nil {
		return nil, fmt.Errorf("screen %d: create tile preview: %w", c.number, err)
	}
	if c.theme != nil {
		if err := o.SetTheme(*c.theme); err != nil {
			o.Destroy()
			return nil, fmt.Errorf("screen %d: apply theme: %w", c.number, err)
		}
	}
	c.preview = o
	return o, nil
}
