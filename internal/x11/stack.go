package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// LowerBeneathFocus restacks surface directly below the top-level frame of
// the active window. Without an active window the stacking is left alone.
// ConfigureWindow carries no timestamp, so timestamp only orders requests:
// one older than the last applied restack is dropped. Zero (CurrentTime)
// always restacks.
func (c *Connection) LowerBeneathFocus(surface uint32, timestamp uint32) error {
	if !c.acceptRestack(timestamp) {
		c.logger.Debug("dropping stale restack", "timestamp", timestamp)
		return nil
	}

	active, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil || active == 0 {
		return nil
	}

	frame, err := c.topLevel(active)
	if err != nil {
		return err
	}
	if frame == xproto.Window(surface) {
		return nil
	}

	// Value list order follows the mask bits: sibling, then stack mode.
	err = xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		xproto.Window(surface),
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(frame), xproto.StackModeBelow},
	).Check()
	if err != nil {
		return fmt.Errorf("stack below window 0x%x: %w", uint32(frame), err)
	}
	return nil
}

// topLevel walks up from win to the child of the root that contains it,
// which is the window manager frame for reparented clients.
func (c *Connection) topLevel(win xproto.Window) (xproto.Window, error) {
	for {
		tree, err := xproto.QueryTree(c.XUtil.Conn(), win).Reply()
		if err != nil {
			return 0, fmt.Errorf("query tree of 0x%x: %w", uint32(win), err)
		}
		if tree.Parent == tree.Root || tree.Parent == 0 {
			return win, nil
		}
		win = tree.Parent
	}
}

func (c *Connection) acceptRestack(timestamp uint32) bool {
	c.restackMu.Lock()
	defer c.restackMu.Unlock()
	if timestamp == 0 {
		return true
	}
	if c.lastRestack != 0 && serverTimeBefore(timestamp, c.lastRestack) {
		return false
	}
	c.lastRestack = timestamp
	return true
}

// serverTimeBefore compares X server times, which wrap around at 2^32.
func serverTimeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
