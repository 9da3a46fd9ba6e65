package tiling

import (
	"fmt"
	"strings"
)

// Direction is a compass direction used for monitor and workspace navigation.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// ParseDirection converts "up", "down", "left" or "right" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
}

// Corner names one of the four corners of a screen.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Corners lists every corner in declaration order.
var Corners = [...]Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight}

func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the four named corners.
func (c Corner) Valid() bool {
	return c >= CornerTopLeft && c <= CornerBottomRight
}

// Right reports whether the corner is on the right edge.
func (c Corner) Right() bool {
	return c == CornerTopRight || c == CornerBottomRight
}

// Bottom reports whether the corner is on the bottom edge.
func (c Corner) Bottom() bool {
	return c == CornerBottomLeft || c == CornerBottomRight
}

// ParseCorner accepts "top-left", "topleft" or "top_left" style names.
func ParseCorner(s string) (Corner, error) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch normalized {
	case "topleft":
		return CornerTopLeft, nil
	case "topright":
		return CornerTopRight, nil
	case "bottomleft":
		return CornerBottomLeft, nil
	case "bottomright":
		return CornerBottomRight, nil
	}
	return 0, fmt.Errorf("%w: unknown corner %q", ErrInvalidArgument, s)
}
