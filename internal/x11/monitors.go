package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// GetMonitors retrieves all active monitors using XRandR. Monitors are
// indexed in CRTC order.
func (c *Connection) GetMonitors() (*monitor.Set, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var infos []monitor.Info
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			c.logger.Debug("skipping unreadable crtc", "crtc", crtc, "error", err)
			continue
		}

		// Disabled CRTCs report no size or no outputs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(outputInfo.Name)
		}

		infos = append(infos, monitor.Info{
			Name: name,
			Rect: tiling.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	if len(infos) == 0 {
		// No RandR outputs (e.g. Xvfb): the root window is the only monitor.
		geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
		if err != nil {
			return nil, fmt.Errorf("failed to get root geometry: %w", err)
		}
		infos = append(infos, monitor.Info{
			Name: "default",
			Rect: tiling.Rect{Width: int(geom.Width), Height: int(geom.Height)},
		})
	}

	return monitor.NewSetFromInfos(infos), nil
}

// Strut is the space a dock reserves along one screen edge, with the range
// along that edge it covers. End values are inclusive as in
// _NET_WM_STRUT_PARTIAL.
type Strut struct {
	Left, Right, Top, Bottom int

	LeftStartY, LeftEndY     int
	RightStartY, RightEndY   int
	TopStartX, TopEndX       int
	BottomStartX, BottomEndX int
}

// WorkArea returns mon minus the space reserved by dock windows. Snapping
// targets this area so previews never cover panels.
func (c *Connection) WorkArea(mon tiling.Rect) (tiling.Rect, error) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return mon, fmt.Errorf("failed to get root geometry: %w", err)
	}
	struts, err := c.dockStruts(int(rootGeom.Width), int(rootGeom.Height))
	if err != nil {
		return mon, err
	}
	return ApplyStruts(mon, int(rootGeom.Width), int(rootGeom.Height), struts), nil
}

func (c *Connection) dockStruts(rootWidth, rootHeight int) ([]Strut, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	var struts []Strut
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			struts = append(struts, Strut{
				Left: int(sp.Left), Right: int(sp.Right), Top: int(sp.Top), Bottom: int(sp.Bottom),
				LeftStartY: int(sp.LeftStartY), LeftEndY: int(sp.LeftEndY),
				RightStartY: int(sp.RightStartY), RightEndY: int(sp.RightEndY),
				TopStartX: int(sp.TopStartX), TopEndX: int(sp.TopEndX),
				BottomStartX: int(sp.BottomStartX), BottomEndX: int(sp.BottomEndX),
			})
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			struts = append(struts, FullStrut(int(s.Left), int(s.Right), int(s.Top), int(s.Bottom), rootWidth, rootHeight))
		}
	}
	return struts, nil
}

// FullStrut spans each reserved edge across the whole root window.
func FullStrut(left, right, top, bottom, rootWidth, rootHeight int) Strut {
	return Strut{
		Left: left, Right: right, Top: top, Bottom: bottom,
		LeftEndY:   rootHeight - 1,
		RightEndY:  rootHeight - 1,
		TopEndX:    rootWidth - 1,
		BottomEndX: rootWidth - 1,
	}
}

// ApplyStruts shrinks mon by every strut that overlaps it. The result is at
// least 1x1.
func ApplyStruts(mon tiling.Rect, rootWidth, rootHeight int, struts []Strut) tiling.Rect {
	var left, right, top, bottom int

	for _, sp := range struts {
		if sp.Top > 0 {
			band := tiling.Rect{X: sp.TopStartX, Y: 0, Width: sp.TopEndX - sp.TopStartX + 1, Height: sp.Top}
			top = max(top, mon.Intersect(band).Height)
		}
		if sp.Bottom > 0 {
			band := tiling.Rect{X: sp.BottomStartX, Y: rootHeight - sp.Bottom, Width: sp.BottomEndX - sp.BottomStartX + 1, Height: sp.Bottom}
			bottom = max(bottom, mon.Intersect(band).Height)
		}
		if sp.Left > 0 {
			band := tiling.Rect{X: 0, Y: sp.LeftStartY, Width: sp.Left, Height: sp.LeftEndY - sp.LeftStartY + 1}
			left = max(left, mon.Intersect(band).Width)
		}
		if sp.Right > 0 {
			band := tiling.Rect{X: rootWidth - sp.Right, Y: sp.RightStartY, Width: sp.Right, Height: sp.RightEndY - sp.RightStartY + 1}
			right = max(right, mon.Intersect(band).Width)
		}
	}

	out := tiling.Rect{
		X:      mon.X + left,
		Y:      mon.Y + top,
		Width:  max(1, mon.Width-left-right),
		Height: max(1, mon.Height-top-bottom),
	}
	return out
}
