package tiling

import (
	"errors"
	"reflect"
	"testing"
)

func TestCalculateGrid(t *testing.T) {
	tests := []struct {
		n          int
		rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		rows, cols := CalculateGrid(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("CalculateGrid(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestCalculateWorkspaceLayout_FiveTopLeftRowMajor(t *testing.T) {
	layout, err := CalculateWorkspaceLayout(5, 0, CornerTopLeft, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Rows != 2 || layout.Cols != 3 {
		t.Fatalf("expected 2 rows x 3 cols, got %dx%d", layout.Rows, layout.Cols)
	}
	want := []int{0, 1, 2, 3, 4, NoWorkspace}
	if !reflect.DeepEqual(layout.Grid, want) {
		t.Fatalf("grid = %v, want %v", layout.Grid, want)
	}
	if layout.CurrentRow != 0 || layout.CurrentCol != 0 {
		t.Fatalf("current = (%d,%d), want (0,0)", layout.CurrentRow, layout.CurrentCol)
	}
}

func TestCalculateWorkspaceLayout_StartingCorners(t *testing.T) {
	tests := []struct {
		name     string
		corner   Corner
		vertical bool
		want     []int
	}{
		{"top-right row-major", CornerTopRight, false, []int{2, 1, 0, NoWorkspace, 4, 3}},
		{"bottom-left row-major", CornerBottomLeft, false, []int{3, 4, NoWorkspace, 0, 1, 2}},
		{"bottom-right row-major", CornerBottomRight, false, []int{NoWorkspace, 4, 3, 2, 1, 0}},
		// Column-major swaps roles: 3 rows x 2 cols.
		{"top-left column-major", CornerTopLeft, true, []int{0, 3, 1, 4, 2, NoWorkspace}},
		{"bottom-right column-major", CornerBottomRight, true, []int{NoWorkspace, 2, 4, 1, 3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := CalculateWorkspaceLayout(5, 0, tt.corner, tt.vertical)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(layout.Grid, tt.want) {
				t.Fatalf("grid = %v, want %v", layout.Grid, tt.want)
			}
		})
	}
}

func TestCalculateWorkspaceLayout_EveryIndexExactlyOnce(t *testing.T) {
	for n := 1; n <= 40; n++ {
		for _, corner := range Corners {
			for _, vertical := range []bool{false, true} {
				layout, err := CalculateWorkspaceLayout(n, n-1, corner, vertical)
				if err != nil {
					t.Fatalf("n=%d: unexpected error: %v", n, err)
				}
				if layout.Rows*layout.Cols < n {
					t.Fatalf("n=%d: grid %dx%d too small", n, layout.Rows, layout.Cols)
				}
				if len(layout.Grid) != layout.Rows*layout.Cols {
					t.Fatalf("n=%d: grid length %d, want %d", n, len(layout.Grid), layout.Rows*layout.Cols)
				}

				seen := make(map[int]int)
				for _, v := range layout.Grid {
					if v != NoWorkspace {
						seen[v]++
					}
				}
				for i := 0; i < n; i++ {
					if seen[i] != 1 {
						t.Fatalf("n=%d corner=%s vertical=%v: index %d appears %d times", n, corner, vertical, i, seen[i])
					}
				}

				if got := layout.Index(layout.CurrentRow, layout.CurrentCol); got != n-1 {
					t.Fatalf("n=%d: current cell holds %d, want %d", n, got, n-1)
				}
			}
		}
	}
}

func TestCalculateWorkspaceLayout_ZeroWorkspacesIsInvalid(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := CalculateWorkspaceLayout(n, 0, CornerTopLeft, false)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("n=%d: expected ErrInvalidArgument, got %v", n, err)
		}
	}
}

func TestCalculateWorkspaceLayout_ClampsCurrentIndex(t *testing.T) {
	for _, current := range []int{-1, 4, 100} {
		layout, err := CalculateWorkspaceLayout(4, current, CornerBottomRight, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := layout.Index(layout.CurrentRow, layout.CurrentCol); got != 0 {
			t.Fatalf("current=%d: expected clamp to workspace 0, got %d", current, got)
		}
	}
}

func TestCalculateWorkspaceLayoutWithGrid(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		rows, cols int
		vertical   bool
		wantRows   int
		wantCols   int
	}{
		{"explicit fits", 4, 1, 4, false, 1, 4},
		{"rows derived from cols", 7, 0, 2, false, 4, 2},
		{"cols derived from rows", 7, 2, 0, false, 2, 4},
		{"too small grows rows", 7, 2, 2, false, 4, 2},
		{"too small grows cols when vertical", 7, 2, 2, true, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := CalculateWorkspaceLayoutWithGrid(tt.n, 0, tt.rows, tt.cols, CornerTopLeft, tt.vertical)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if layout.Rows != tt.wantRows || layout.Cols != tt.wantCols {
				t.Fatalf("got %dx%d, want %dx%d", layout.Rows, layout.Cols, tt.wantRows, tt.wantCols)
			}
		})
	}
}

func TestWorkspaceLayoutNeighbor(t *testing.T) {
	// [0] [1] [2]
	// [3] [4] [ ]
	layout, err := CalculateWorkspaceLayout(5, 1, CornerTopLeft, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		dir    Direction
		wrap   bool
		want   int
		wantOK bool
	}{
		{"right", DirRight, false, 2, true},
		{"left", DirLeft, false, 0, true},
		{"down", DirDown, false, 4, true},
		{"up at edge", DirUp, false, NoWorkspace, false},
		{"up wraps", DirUp, true, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := layout.Neighbor(tt.dir, tt.wrap)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Neighbor(%s, %v) = (%d, %v), want (%d, %v)", tt.dir, tt.wrap, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWorkspaceLayoutNeighbor_SkipsEmptyCellsWhenWrapping(t *testing.T) {
	// [0] [1] [2]
	// [3] [4] [ ]
	layout, err := CalculateWorkspaceLayout(5, 4, CornerTopLeft, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := layout.Neighbor(DirRight, false); ok {
		t.Fatalf("expected no neighbor into empty cell without wrap")
	}
	got, ok := layout.Neighbor(DirRight, true)
	if !ok || got != 3 {
		t.Fatalf("expected wrap to workspace 3, got (%d, %v)", got, ok)
	}
}

func TestWorkspaceLayoutPosition(t *testing.T) {
	layout, err := CalculateWorkspaceLayout(5, 0, CornerBottomRight, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row, col, ok := layout.Position(0)
	if !ok || row != 1 || col != 2 {
		t.Fatalf("Position(0) = (%d,%d,%v), want (1,2,true)", row, col, ok)
	}
	if _, _, ok := layout.Position(5); ok {
		t.Fatalf("expected Position(5) to be absent")
	}
}

func TestParseCorner(t *testing.T) {
	for _, name := range []string{"top-left", "TopLeft", "top_left"} {
		c, err := ParseCorner(name)
		if err != nil || c != CornerTopLeft {
			t.Fatalf("ParseCorner(%q) = (%v, %v)", name, c, err)
		}
	}
	if _, err := ParseCorner("middle"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
