package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// CompositingAvailable reports whether a compositing manager owns the
// _NET_WM_CM_S<n> selection of this screen.
func (c *Connection) CompositingAvailable() bool {
	name := fmt.Sprintf("_NET_WM_CM_S%d", c.ScreenNumber())
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		c.logger.Debug("failed to intern compositing selection", "atom", name, "error", err)
		return false
	}
	reply, err := xproto.GetSelectionOwner(c.XUtil.Conn(), atom).Reply()
	if err != nil {
		c.logger.Debug("failed to query compositing selection owner", "atom", name, "error", err)
		return false
	}
	return reply.Owner != 0
}

// AlphaVisual returns a 32-bit TrueColor visual of the screen, if any.
func (c *Connection) AlphaVisual() (xproto.Visualid, bool) {
	return findVisual(c.XUtil.Screen().AllowedDepths, 32)
}

func findVisual(depths []xproto.DepthInfo, depth byte) (xproto.Visualid, bool) {
	for _, d := range depths {
		if d.Depth != depth {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return v.VisualId, true
			}
		}
	}
	return 0, false
}
