package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

// CrossingFunc receives pointer crossings of a corner trigger window.
type CrossingFunc func(corner tiling.Corner, entered bool)

// CornerWindows backs hot corner trigger zones with InputOnly windows. It
// implements corners.Surfaces.
type CornerWindows struct {
	conn    *Connection
	onCross CrossingFunc
	mu      sync.Mutex
	windows [4]*xwindow.Window
}

// NewCornerWindows returns trigger windows reporting crossings to onCross.
// Windows are created on first placement.
func (c *Connection) NewCornerWindows(onCross CrossingFunc) *CornerWindows {
	return &CornerWindows{conn: c, onCross: onCross}
}

// MoveCorner places corner's trigger window at rect and maps it.
func (w *CornerWindows) MoveCorner(corner tiling.Corner, rect tiling.Rect) error {
	win, err := w.ensure(corner)
	if err != nil {
		return err
	}
	win.MoveResize(rect.X, rect.Y, max(1, rect.Width), max(1, rect.Height))
	win.Map()
	return nil
}

// RaiseCorner puts corner's trigger window on top of the stack.
func (w *CornerWindows) RaiseCorner(corner tiling.Corner) error {
	w.mu.Lock()
	win := w.windows[corner]
	w.mu.Unlock()

	if win == nil {
		return nil
	}
	return xproto.ConfigureWindowChecked(
		w.conn.XUtil.Conn(),
		win.Id,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// HideCorner unmaps corner's trigger window.
func (w *CornerWindows) HideCorner(corner tiling.Corner) error {
	w.mu.Lock()
	win := w.windows[corner]
	w.mu.Unlock()

	if win != nil {
		win.Unmap()
	}
	return nil
}

// Destroy releases every trigger window.
func (w *CornerWindows) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, win := range w.windows {
		if win != nil {
			win.Destroy()
			w.windows[i] = nil
		}
	}
}

func (w *CornerWindows) ensure(corner tiling.Corner) (*xwindow.Window, error) {
	if !corner.Valid() {
		return nil, fmt.Errorf("%w: corner %d", tiling.ErrInvalidArgument, int(corner))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if win := w.windows[corner]; win != nil {
		return win, nil
	}

	conn := w.conn.XUtil.Conn()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	// InputOnly window that never draws; it only reports crossings.
	err = xproto.CreateWindowChecked(
		conn,
		0, // depth (must be 0 for InputOnly)
		wid,
		w.conn.Root,
		0, 0, // x, y
		1, 1, // width, height
		0, // border_width
		xproto.WindowClassInputOnly,
		xproto.Visualid(0), // CopyFromParent
		xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{1, xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create %s corner window: %w", corner, err)
	}

	win := xwindow.New(w.conn.XUtil, wid)
	w.windows[corner] = win

	if w.onCross != nil {
		xevent.EnterNotifyFun(func(_ *xgbutil.XUtil, _ xevent.EnterNotifyEvent) {
			w.onCross(corner, true)
		}).Connect(w.conn.XUtil, wid)
		xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, _ xevent.LeaveNotifyEvent) {
			w.onCross(corner, false)
		}).Connect(w.conn.XUtil, wid)
	}

	w.conn.logger.Debug("corner window created", "corner", corner, "window", uint32(wid))
	return win, nil
}
