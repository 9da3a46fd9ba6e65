package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/wmgeom/internal/preview"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

const surfaceClass = "wmgeom"

// Surface is an override-redirect window backing the tile preview.
type Surface struct {
	conn     *Connection
	win      *xwindow.Window
	gc       xproto.Gcontext
	colormap xproto.Colormap
	alpha    bool

	mu      sync.Mutex
	last    preview.Paint
	painted bool
}

// CreateSurface allocates a preview surface. With alpha the window uses the
// screen's 32-bit visual and pixels carry premultiplied alpha.
func (c *Connection) CreateSurface(alpha bool) (preview.Surface, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	depth := screen.RootDepth
	visual := screen.RootVisual
	var cmap xproto.Colormap

	if alpha {
		v, ok := c.AlphaVisual()
		if !ok {
			return nil, fmt.Errorf("no 32-bit TrueColor visual")
		}
		depth, visual = 32, v

		id, err := xproto.NewColormapId(conn)
		if err != nil {
			return nil, err
		}
		// A non-default visual needs its own colormap.
		if err := xproto.CreateColormapChecked(conn, xproto.ColormapAllocNone, id, c.Root, visual).Check(); err != nil {
			return nil, fmt.Errorf("create colormap: %w", err)
		}
		cmap = id
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		c.freeColormap(cmap)
		return nil, err
	}

	// Value list order follows the bit positions of the mask (low to high).
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{0, 0, 1, xproto.EventMaskExposure}
	if alpha {
		mask |= xproto.CwColormap
		values = append(values, uint32(cmap))
	}

	err = xproto.CreateWindowChecked(
		conn,
		depth,
		wid,
		c.Root,
		0, 0, // x, y (set on first show)
		1, 1, // width, height
		0, // border_width
		xproto.WindowClassInputOutput,
		visual,
		mask,
		values,
	).Check()
	if err != nil {
		c.freeColormap(cmap)
		return nil, fmt.Errorf("create window: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err == nil {
		err = xproto.CreateGCChecked(
			conn,
			gc,
			xproto.Drawable(wid),
			xproto.GcForeground|xproto.GcLineWidth|xproto.GcGraphicsExposures,
			[]uint32{
				0, // foreground
				1, // line_width
				0, // graphics_exposures=false
			},
		).Check()
	}
	if err != nil {
		xproto.DestroyWindow(conn, wid)
		c.freeColormap(cmap)
		return nil, fmt.Errorf("create gc: %w", err)
	}

	s := &Surface{
		conn:     c,
		win:      xwindow.New(c.XUtil, wid),
		gc:       gc,
		colormap: cmap,
		alpha:    alpha,
	}

	// Compositors match on WM_CLASS to skip shadows and fades.
	if err := icccm.WmClassSet(c.XUtil, wid, &icccm.WmClass{Instance: "tile-preview", Class: surfaceClass}); err != nil {
		c.logger.Debug("failed to set tile preview WM_CLASS", "error", err)
	}
	if err := icccm.WmNameSet(c.XUtil, wid, "wmgeom tile preview"); err != nil {
		c.logger.Debug("failed to set tile preview WM_NAME", "error", err)
	}

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			s.redraw()
		}
	}).Connect(c.XUtil, wid)

	c.logger.Debug("tile preview surface created", "window", uint32(wid), "alpha", alpha)
	return s, nil
}

func (s *Surface) ID() uint32 {
	return uint32(s.win.Id)
}

func (s *Surface) Map() error {
	s.win.Map()
	return nil
}

func (s *Surface) Unmap() error {
	s.win.Unmap()
	return nil
}

func (s *Surface) MoveResize(r tiling.Rect) error {
	s.win.MoveResize(r.X, r.Y, max(1, r.Width), max(1, r.Height))
	return nil
}

// Invalidate clears rect and asks the server for an Expose so the next
// paint covers it.
func (s *Surface) Invalidate(r tiling.Rect) error {
	if r.Empty() {
		return nil
	}
	return xproto.ClearAreaChecked(
		s.conn.XUtil.Conn(),
		true,
		s.win.Id,
		int16(r.X), int16(r.Y),
		uint16(r.Width), uint16(r.Height),
	).Check()
}

// SetShape clips both the bounding and the input shape so the clipped-away
// interior neither draws nor takes clicks.
func (s *Surface) SetShape(region *tiling.Region) error {
	if !s.conn.hasShape {
		return nil
	}
	conn := s.conn.XUtil.Conn()

	for _, kind := range []shape.Kind{shape.SkBounding, shape.SkInput} {
		var err error
		if region == nil {
			err = shape.MaskChecked(conn, shape.SoSet, kind, s.win.Id, 0, 0, xproto.PixmapNone).Check()
		} else {
			err = shape.RectanglesChecked(conn, shape.SoSet, kind, xproto.ClipOrderingUnsorted, s.win.Id, 0, 0, xRects(region.Rects())).Check()
		}
		if err != nil {
			return fmt.Errorf("shape window: %w", err)
		}
	}
	return nil
}

func (s *Surface) Paint(p preview.Paint) error {
	s.mu.Lock()
	s.last = p
	s.painted = true
	s.mu.Unlock()

	return s.draw(p)
}

func (s *Surface) Destroy() error {
	conn := s.conn.XUtil.Conn()
	xproto.FreeGC(conn, s.gc)
	s.win.Destroy()
	s.conn.freeColormap(s.colormap)
	return nil
}

func (s *Surface) redraw() {
	s.mu.Lock()
	p, ok := s.last, s.painted
	s.mu.Unlock()

	if !ok {
		return
	}
	if err := s.draw(p); err != nil {
		s.conn.logger.Warn("tile preview redraw failed", "error", err)
	}
}

func (s *Surface) draw(p preview.Paint) error {
	conn := s.conn.XUtil.Conn()

	err := xproto.ChangeWindowAttributesChecked(conn, s.win.Id, xproto.CwBackPixel, []uint32{s.pixel(p.Background)}).Check()
	if err != nil {
		return fmt.Errorf("set background: %w", err)
	}
	xproto.ClearArea(conn, false, s.win.Id, 0, 0, 0, 0)

	if len(p.Strokes) == 0 {
		return nil
	}
	xproto.ChangeGC(conn, s.gc, xproto.GcForeground, []uint32{s.pixel(p.Stroke)})

	// PolyRectangle outlines cover width+1 by height+1 pixels.
	rects := make([]xproto.Rectangle, 0, len(p.Strokes))
	for _, r := range p.Strokes {
		if r.Empty() {
			continue
		}
		rects = append(rects, xproto.Rectangle{
			X:      int16(r.X),
			Y:      int16(r.Y),
			Width:  uint16(r.Width - 1),
			Height: uint16(r.Height - 1),
		})
	}
	return xproto.PolyRectangleChecked(conn, xproto.Drawable(s.win.Id), s.gc, rects).Check()
}

func (s *Surface) pixel(c preview.Color) uint32 {
	if s.alpha {
		return c.Pixel()
	}
	return c.RGBPixel()
}

func (c *Connection) freeColormap(cmap xproto.Colormap) {
	if cmap != 0 {
		xproto.FreeColormap(c.XUtil.Conn(), cmap)
	}
}

func xRects(rects []tiling.Rect) []xproto.Rectangle {
	out := make([]xproto.Rectangle, 0, len(rects))
	for _, r := range rects {
		out = append(out, xproto.Rectangle{
			X:      int16(r.X),
			Y:      int16(r.Y),
			Width:  uint16(r.Width),
			Height: uint16(r.Height),
		})
	}
	return out
}
