package tiling

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for caller errors such as a zero workspace
// count or an unknown corner name.
var ErrInvalidArgument = errors.New("invalid argument")

// NoWorkspace marks a grid cell that holds no workspace.
const NoWorkspace = -1

// WorkspaceLayout describes how workspaces are arranged in a 2-D grid for
// directional switching. Grid is row-major with Rows*Cols entries; each entry
// is a workspace index or NoWorkspace.
type WorkspaceLayout struct {
	Rows       int
	Cols       int
	Grid       []int
	CurrentRow int
	CurrentCol int
}

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows <= 0 {
		return 0, 0
	}

	// Calculate columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))

	// Calculate rows needed
	rows = ceilDiv(numWindows, cols)

	return rows, cols
}

// CalculateWorkspaceLayout lays out numWorkspaces in a near-square grid.
//
// Filling starts at the given corner and runs along rows, or along columns when
// verticalFirst is set. An out-of-range current index is clamped to 0.
func CalculateWorkspaceLayout(numWorkspaces, current int, corner Corner, verticalFirst bool) (WorkspaceLayout, error) {
	return CalculateWorkspaceLayoutWithGrid(numWorkspaces, current, 0, 0, corner, verticalFirst)
}

// CalculateWorkspaceLayoutWithGrid is CalculateWorkspaceLayout with explicit
// grid dimensions, as advertised by a pager through _NET_DESKTOP_LAYOUT. A
// rows or cols value <= 0 is derived from the other. If the requested grid
// cannot hold every workspace, the dimension perpendicular to the fill
// direction grows until it can.
func CalculateWorkspaceLayoutWithGrid(numWorkspaces, current, rows, cols int, corner Corner, verticalFirst bool) (WorkspaceLayout, error) {
	if numWorkspaces <= 0 {
		return WorkspaceLayout{}, fmt.Errorf("%w: workspace count must be positive, got %d", ErrInvalidArgument, numWorkspaces)
	}
	if !corner.Valid() {
		return WorkspaceLayout{}, fmt.Errorf("%w: invalid starting corner %d", ErrInvalidArgument, int(corner))
	}
	if current < 0 || current >= numWorkspaces {
		current = 0
	}

	rows, cols = workspaceGridSize(numWorkspaces, rows, cols, verticalFirst)

	layout := WorkspaceLayout{
		Rows: rows,
		Cols: cols,
		Grid: make([]int, rows*cols),
	}
	for i := range layout.Grid {
		layout.Grid[i] = NoWorkspace
	}

	// Fill cells in walk order, mirroring the walk for right/bottom corners.
	next := 0
	place := func(walkRow, walkCol int) {
		row, col := walkRow, walkCol
		if corner.Bottom() {
			row = rows - 1 - walkRow
		}
		if corner.Right() {
			col = cols - 1 - walkCol
		}
		if next < numWorkspaces {
			layout.Grid[row*cols+col] = next
			if next == current {
				layout.CurrentRow = row
				layout.CurrentCol = col
			}
		}
		next++
	}

	if verticalFirst {
		for c := 0; c < cols; c++ {
			for r := 0; r < rows; r++ {
				place(r, c)
			}
		}
	} else {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				place(r, c)
			}
		}
	}

	return layout, nil
}

func workspaceGridSize(n, rows, cols int, verticalFirst bool) (int, int) {
	switch {
	case rows <= 0 && cols <= 0:
		rows, cols = CalculateGrid(n)
		if verticalFirst {
			rows, cols = cols, rows
		}
		return rows, cols
	case rows <= 0:
		rows = ceilDiv(n, cols)
	case cols <= 0:
		cols = ceilDiv(n, rows)
	}

	if rows*cols < n {
		if verticalFirst {
			cols = ceilDiv(n, rows)
		} else {
			rows = ceilDiv(n, cols)
		}
	}
	return rows, cols
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Index returns the workspace at the given cell, or NoWorkspace when the cell
// is empty or out of range.
func (l WorkspaceLayout) Index(row, col int) int {
	if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
		return NoWorkspace
	}
	return l.Grid[row*l.Cols+col]
}

// Position returns the cell holding workspace index.
func (l WorkspaceLayout) Position(index int) (row, col int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	for i, v := range l.Grid {
		if v == index {
			return i / l.Cols, i % l.Cols, true
		}
	}
	return 0, 0, false
}

// Neighbor returns the workspace adjacent to the current one in direction dir.
// Without wrap, stepping off the grid or onto an empty cell yields false. With
// wrap, the walk continues from the opposite edge and skips empty cells.
func (l WorkspaceLayout) Neighbor(dir Direction, wrap bool) (int, bool) {
	if l.Rows <= 0 || l.Cols <= 0 {
		return NoWorkspace, false
	}

	dr, dc := 0, 0
	switch dir {
	case DirUp:
		dr = -1
	case DirDown:
		dr = 1
	case DirLeft:
		dc = -1
	case DirRight:
		dc = 1
	default:
		return NoWorkspace, false
	}

	r, c := l.CurrentRow, l.CurrentCol
	for steps := 0; steps < l.Rows*l.Cols; steps++ {
		r += dr
		c += dc
		if r < 0 || r >= l.Rows || c < 0 || c >= l.Cols {
			if !wrap {
				return NoWorkspace, false
			}
			r = (r + l.Rows) % l.Rows
			c = (c + l.Cols) % l.Cols
		}
		if r == l.CurrentRow && c == l.CurrentCol {
			return NoWorkspace, false
		}
		if idx := l.Grid[r*l.Cols+c]; idx != NoWorkspace {
			return idx, true
		}
		if !wrap {
			return NoWorkspace, false
		}
	}
	return NoWorkspace, false
}
