package tiling

import (
	"fmt"
	"strings"
)

// SnapMode names a tile target within a monitor.
type SnapMode string

const (
	SnapMaximize    SnapMode = "maximize"
	SnapLeftHalf    SnapMode = "left-half"
	SnapRightHalf   SnapMode = "right-half"
	SnapTopHalf     SnapMode = "top-half"
	SnapBottomHalf  SnapMode = "bottom-half"
	SnapTopLeft     SnapMode = "top-left"
	SnapTopRight    SnapMode = "top-right"
	SnapBottomLeft  SnapMode = "bottom-left"
	SnapBottomRight SnapMode = "bottom-right"
)

// SnapModes lists the supported modes in a stable order.
var SnapModes = []SnapMode{
	SnapMaximize,
	SnapLeftHalf,
	SnapRightHalf,
	SnapTopHalf,
	SnapBottomHalf,
	SnapTopLeft,
	SnapTopRight,
	SnapBottomLeft,
	SnapBottomRight,
}

// ParseSnapMode validates a snap mode name.
func ParseSnapMode(s string) (SnapMode, error) {
	mode := SnapMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range SnapModes {
		if m == mode {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown snap mode %q", ErrInvalidArgument, s)
}

// SnapTarget returns the rectangle a window snapped with mode would occupy on
// the given monitor work area.
func SnapTarget(monitor Rect, mode SnapMode) (Rect, error) {
	halfW := monitor.Width / 2
	halfH := monitor.Height / 2
	left := Rect{X: monitor.X, Y: monitor.Y, Width: halfW, Height: monitor.Height}
	right := Rect{X: monitor.X + halfW, Y: monitor.Y, Width: monitor.Width - halfW, Height: monitor.Height}

	var adjusted Rect
	switch mode {
	case SnapMaximize:
		adjusted = monitor
	case SnapLeftHalf:
		adjusted = left
	case SnapRightHalf:
		adjusted = right
	case SnapTopHalf:
		adjusted = Rect{X: monitor.X, Y: monitor.Y, Width: monitor.Width, Height: halfH}
	case SnapBottomHalf:
		adjusted = Rect{X: monitor.X, Y: monitor.Y + halfH, Width: monitor.Width, Height: monitor.Height - halfH}
	case SnapTopLeft:
		adjusted = Rect{X: left.X, Y: left.Y, Width: left.Width, Height: halfH}
	case SnapTopRight:
		adjusted = Rect{X: right.X, Y: right.Y, Width: right.Width, Height: halfH}
	case SnapBottomLeft:
		adjusted = Rect{X: left.X, Y: left.Y + halfH, Width: left.Width, Height: monitor.Height - halfH}
	case SnapBottomRight:
		adjusted = Rect{X: right.X, Y: right.Y + halfH, Width: right.Width, Height: monitor.Height - halfH}
	default:
		return Rect{}, fmt.Errorf("%w: unsupported snap mode %q", ErrInvalidArgument, mode)
	}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}

	return adjusted, nil
}
