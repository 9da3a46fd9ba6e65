package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/wmgeom/internal/screen"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// _NET_DESKTOP_LAYOUT values.
const (
	layoutOrientHorz = 0
	layoutOrientVert = 1

	layoutTopLeft     = 0
	layoutTopRight    = 1
	layoutBottomRight = 2
	layoutBottomLeft  = 3
)

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom. Returns 0 with an error if detection fails.
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// GetDesktopCount returns the number of virtual desktops.
func (c *Connection) GetDesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}

// DesktopLayout reads the pager's _NET_DESKTOP_LAYOUT hint.
func (c *Connection) DesktopLayout() (screen.WorkspaceOptions, error) {
	dl, err := ewmh.DesktopLayoutGet(c.XUtil)
	if err != nil {
		return screen.WorkspaceOptions{}, fmt.Errorf("failed to get desktop layout: %w", err)
	}
	return WorkspaceOptionsFromLayout(int(dl.Orientation), int(dl.ColumnsCount), int(dl.RowsCount), int(dl.StartingCorner))
}

// WorkspaceOptionsFromLayout converts _NET_DESKTOP_LAYOUT fields. A vertical
// orientation fills columns first.
func WorkspaceOptionsFromLayout(orientation, columns, rows, startingCorner int) (screen.WorkspaceOptions, error) {
	var opts screen.WorkspaceOptions

	switch orientation {
	case layoutOrientHorz:
	case layoutOrientVert:
		opts.Vertical = true
	default:
		return opts, fmt.Errorf("%w: desktop layout orientation %d", tiling.ErrInvalidArgument, orientation)
	}

	switch startingCorner {
	case layoutTopLeft:
		opts.StartingCorner = tiling.CornerTopLeft
	case layoutTopRight:
		opts.StartingCorner = tiling.CornerTopRight
	case layoutBottomRight:
		opts.StartingCorner = tiling.CornerBottomRight
	case layoutBottomLeft:
		opts.StartingCorner = tiling.CornerBottomLeft
	default:
		return opts, fmt.Errorf("%w: desktop layout starting corner %d", tiling.ErrInvalidArgument, startingCorner)
	}

	if columns < 0 || rows < 0 {
		return opts, fmt.Errorf("%w: desktop layout %dx%d", tiling.ErrInvalidArgument, columns, rows)
	}
	opts.Cols = columns
	opts.Rows = rows
	return opts, nil
}
