// Package preview implements the tile preview: a transient overlay marking
// the area a dragged window will occupy once it snaps.
//
// The overlay works in one of two modes, fixed at construction. With a
// compositor and an ARGB visual it fills the target area with a translucent
// accent color. Without them it shows only a 4 px frame and clips the
// surface shape to that frame so the desktop shows through the middle.
package preview

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

// OutlineWidth is the frame width in outline mode.
const OutlineWidth = 4

// ErrDestroyed is returned by operations on a destroyed overlay.
var ErrDestroyed = errors.New("tile preview destroyed")

// Options configures an Overlay.
type Options struct {
	// Composited reports whether a compositing manager is running.
	Composited bool
	// AlphaVisual reports whether the screen offers an ARGB visual.
	AlphaVisual bool
	Theme       Theme

	Factory   SurfaceFactory
	Stacker   Stacker
	Scheduler Scheduler
	// Timestamp returns the time of the event driving the current update.
	Timestamp func() uint32
	Logger    *slog.Logger
}

// State is a snapshot of the overlay.
type State struct {
	Visible  bool
	Rect     tiling.Rect
	HasAlpha bool
	Color    Color
}

// Overlay is the tile preview of one screen.
type Overlay struct {
	mu sync.Mutex

	hasAlpha  bool
	theme     Theme
	color     *Color
	factory   SurfaceFactory
	stacker   Stacker
	scheduler Scheduler
	timestamp func() uint32
	logger    *slog.Logger

	surface   Surface
	visible   bool
	rect      tiling.Rect
	destroyed bool

	pendingID    int
	pendingTimer Timer
}

// New creates an overlay. The surface is allocated on the first show.
func New(opts Options) (*Overlay, error) {
	if opts.Factory == nil {
		return nil, fmt.Errorf("tile preview: surface factory is required")
	}

	o := &Overlay{
		hasAlpha:  opts.Composited && opts.AlphaVisual,
		theme:     opts.Theme,
		factory:   opts.Factory,
		stacker:   opts.Stacker,
		scheduler: opts.Scheduler,
		timestamp: opts.Timestamp,
		logger:    opts.Logger,
	}
	if o.scheduler == nil {
		o.scheduler = RealScheduler
	}
	if o.timestamp == nil {
		o.timestamp = func() uint32 { return 0 }
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o, nil
}

// HasAlpha reports whether the overlay renders in alpha mode.
func (o *Overlay) HasAlpha() bool {
	return o.hasAlpha
}

// Show displays the preview at rect immediately, cancelling any pending
// delayed show. Showing the rectangle that is already visible does nothing.
func (o *Overlay) Show(rect tiling.Rect) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelPendingLocked()
	return o.showLocked(rect)
}

// ShowAfter displays the preview at rect once delay has elapsed. Any later
// Show, ShowAfter, Hide or Destroy supersedes the request, so a burst of
// updates paints at most once.
func (o *Overlay) ShowAfter(rect tiling.Rect, delay time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.destroyed {
		return ErrDestroyed
	}
	o.cancelPendingLocked()
	if delay <= 0 {
		return o.showLocked(rect)
	}
	if o.visible && o.rect == rect {
		return nil
	}

	o.pendingID++
	id := o.pendingID
	o.pendingTimer = o.scheduler.AfterFunc(delay, func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		if o.pendingTimer == nil || o.pendingID != id {
			return
		}
		o.pendingTimer = nil
		if err := o.showLocked(rect); err != nil {
			o.logger.Error("delayed tile preview failed", "rect", rect, "error", err)
		}
	})
	return nil
}

// Pending reports whether a delayed show is outstanding.
func (o *Overlay) Pending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pendingTimer != nil
}

// Hide unmaps the preview and cancels any pending delayed show. The last
// rectangle is kept for the next idempotence check.
func (o *Overlay) Hide() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelPendingLocked()
	if o.destroyed || !o.visible || o.surface == nil {
		return nil
	}

	o.visible = false
	if err := o.surface.Unmap(); err != nil {
		return fmt.Errorf("tile preview: unmap: %w", err)
	}
	o.logger.Debug("tile preview hidden")
	return nil
}

// Destroy releases the surface and color. Later calls are no-ops.
func (o *Overlay) Destroy() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.destroyed {
		return nil
	}
	o.destroyed = true
	o.cancelPendingLocked()
	o.visible = false
	o.color = nil

	if o.surface == nil {
		return nil
	}
	s := o.surface
	o.surface = nil
	if err := s.Destroy(); err != nil {
		return fmt.Errorf("tile preview: destroy surface: %w", err)
	}
	return nil
}

// SetTheme replaces the theme values. In alpha mode a visible preview is
// repainted with the new fill.
func (o *Overlay) SetTheme(theme Theme) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.theme = theme
	if !o.hasAlpha || o.surface == nil {
		return nil
	}
	fill := theme.FillColor()
	o.color = &fill
	if !o.visible {
		return nil
	}
	return o.surface.Paint(o.paintLocked())
}

// Repaint redraws a visible preview, e.g. after the surface was exposed.
func (o *Overlay) Repaint() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.visible || o.surface == nil {
		return nil
	}
	return o.surface.Paint(o.paintLocked())
}

// State returns a snapshot of the overlay.
func (o *Overlay) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := State{
		Visible:  o.visible,
		Rect:     o.rect,
		HasAlpha: o.hasAlpha,
		Color:    OutlineColor,
	}
	if o.hasAlpha {
		st.Color = o.theme.FillColor()
		if o.color != nil {
			st.Color = *o.color
		}
	}
	return st
}

func (o *Overlay) showLocked(rect tiling.Rect) error {
	if o.destroyed {
		return ErrDestroyed
	}
	if o.visible && o.rect == rect {
		return nil
	}
	if err := o.ensureSurfaceLocked(); err != nil {
		return err
	}
	s := o.surface

	if !o.visible {
		if err := s.Map(); err != nil {
			return fmt.Errorf("tile preview: map: %w", err)
		}
		o.visible = true
	}

	if o.stacker != nil {
		if err := o.stacker.LowerBeneathFocus(s.ID(), o.timestamp()); err != nil {
			o.logger.Warn("failed to stack tile preview beneath focus window", "error", err)
		}
	}

	// The old extent is invalidated so a shrinking preview leaves nothing behind.
	if err := s.Invalidate(o.rect.Size()); err != nil {
		return o.abortLocked(fmt.Errorf("tile preview: invalidate: %w", err))
	}

	o.rect = rect
	if err := s.MoveResize(rect); err != nil {
		return o.abortLocked(fmt.Errorf("tile preview: move/resize: %w", err))
	}

	var shape *tiling.Region
	if !o.hasAlpha {
		shape = tiling.FrameRegion(rect.Width, rect.Height, OutlineWidth)
	}
	if err := s.SetShape(shape); err != nil {
		return o.abortLocked(fmt.Errorf("tile preview: set shape: %w", err))
	}

	if err := s.Paint(o.paintLocked()); err != nil {
		return o.abortLocked(fmt.Errorf("tile preview: paint: %w", err))
	}

	o.logger.Debug("tile preview shown", "rect", rect, "alpha", o.hasAlpha)
	return nil
}

// abortLocked unmaps a surface left in an unknown state so a visible preview
// always matches the stored rectangle.
func (o *Overlay) abortLocked(err error) error {
	o.visible = false
	if uerr := o.surface.Unmap(); uerr != nil {
		return errors.Join(err, uerr)
	}
	return err
}

func (o *Overlay) ensureSurfaceLocked() error {
	if o.surface != nil {
		return nil
	}
	s, err := o.factory.CreateSurface(o.hasAlpha)
	if err != nil {
		return fmt.Errorf("tile preview: allocate surface: %w", err)
	}
	if s == nil {
		return fmt.Errorf("tile preview: allocate surface: factory returned no surface")
	}
	o.surface = s
	if o.hasAlpha {
		fill := o.theme.FillColor()
		o.color = &fill
	}
	return nil
}

func (o *Overlay) paintLocked() Paint {
	w, h := o.rect.Width, o.rect.Height
	outer := tiling.Rect{Width: w, Height: h}

	if o.hasAlpha {
		fill := o.theme.FillColor()
		if o.color != nil {
			fill = *o.color
		}
		return Paint{
			Background: fill,
			Stroke:     fill.Opaque(),
			Strokes:    []tiling.Rect{outer},
		}
	}

	strokes := []tiling.Rect{outer}
	inset := OutlineWidth - 1
	inner := tiling.Rect{X: inset, Y: inset, Width: w - 2*inset, Height: h - 2*inset}
	if !inner.Empty() {
		strokes = append(strokes, inner)
	}
	return Paint{
		Background: OutlineColor,
		Stroke:     OutlineColor,
		Strokes:    strokes,
	}
}

func (o *Overlay) cancelPendingLocked() {
	if o.pendingTimer == nil {
		return
	}
	o.pendingTimer.Stop()
	o.pendingTimer = nil
	o.pendingID++
}
