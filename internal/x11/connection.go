package x11

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	hasShape bool
	logger   *slog.Logger

	restackMu   sync.Mutex
	lastRestack uint32
}

// NewConnection connects to display (empty means $DISPLAY) and initializes
// the extensions the geometry core uses.
func NewConnection(display string, logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}

	keybind.Initialize(xu)

	c := &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		logger: logger,
	}
	if err := shape.Init(xu.Conn()); err != nil {
		logger.Warn("SHAPE extension unavailable, outline preview will not be clipped", "error", err)
	} else {
		c.hasShape = true
	}
	return c, nil
}

// ScreenNumber is the default screen of the connection.
func (c *Connection) ScreenNumber() int {
	return c.XUtil.Conn().DefaultScreen
}

// Timestamp returns the server time of the last event seen.
func (c *Connection) Timestamp() uint32 {
	return uint32(c.XUtil.TimeGet())
}

// Pointer returns the pointer position in root coordinates.
func (c *Connection) Pointer() (tiling.Point, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return tiling.Point{}, fmt.Errorf("query pointer: %w", err)
	}
	return tiling.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
