package x11

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

var ignoreModsOnce sync.Once

// BindKey grabs keySequence (e.g. "Mod4-Escape") on the root window and runs
// callback on every press. Lock modifiers are ignored.
func (c *Connection) BindKey(keySequence string, callback func()) error {
	ignoreModsOnce.Do(func() {
		xevent.IgnoreMods = ignoreModMasks(
			uint16(xproto.ModMaskLock),
			modMaskForKeysym(c.XUtil, "Num_Lock"),
			modMaskForKeysym(c.XUtil, "Scroll_Lock"),
		)
	})

	return keybind.KeyPressFun(func(_ *xgbutil.XUtil, _ xevent.KeyPressEvent) {
		callback()
	}).Connect(c.XUtil, c.Root, keySequence, true)
}

// ignoreModMasks returns every combination of the distinct non-zero lock
// masks, including the empty one.
func ignoreModMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	ignore := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
