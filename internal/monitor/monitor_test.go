package monitor

import (
	"reflect"
	"testing"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

func dualHead() *Set {
	return NewSet([]tiling.Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	})
}

func TestNeighbor_DualHead(t *testing.T) {
	set := dualHead()

	got, ok := set.Neighbor(0, tiling.DirRight)
	if !ok || got.Index != 1 {
		t.Fatalf("Neighbor(0, right) = (%d, %v), want (1, true)", got.Index, ok)
	}
	if _, ok := set.Neighbor(1, tiling.DirRight); ok {
		t.Fatalf("expected no monitor right of 1")
	}
	got, ok = set.Neighbor(1, tiling.DirLeft)
	if !ok || got.Index != 0 {
		t.Fatalf("Neighbor(1, left) = (%d, %v), want (0, true)", got.Index, ok)
	}
	if _, ok := set.Neighbor(0, tiling.DirUp); ok {
		t.Fatalf("expected no monitor above 0")
	}
}

func TestNeighbor_AntisymmetricOnGrid(t *testing.T) {
	// 2x2 grid of equal monitors, listed out of visual order.
	// [2] [0]
	// [3] [1]
	set := NewSet([]tiling.Rect{
		{X: 1280, Y: 0, Width: 1280, Height: 1024},
		{X: 1280, Y: 1024, Width: 1280, Height: 1024},
		{X: 0, Y: 0, Width: 1280, Height: 1024},
		{X: 0, Y: 1024, Width: 1280, Height: 1024},
	})

	dirs := []tiling.Direction{tiling.DirUp, tiling.DirDown, tiling.DirLeft, tiling.DirRight}
	for from := 0; from < set.Len(); from++ {
		for _, dir := range dirs {
			to, ok := set.Neighbor(from, dir)
			if !ok {
				continue
			}
			back, ok := set.Neighbor(to.Index, dir.Opposite())
			if !ok || back.Index != from {
				t.Fatalf("Neighbor(%d, %s) = %d but Neighbor(%d, %s) = (%d, %v)",
					from, dir, to.Index, to.Index, dir.Opposite(), back.Index, ok)
			}
		}
	}

	if got, _ := set.Neighbor(2, tiling.DirRight); got.Index != 0 {
		t.Fatalf("expected 0 right of 2, got %d", got.Index)
	}
	if got, _ := set.Neighbor(0, tiling.DirDown); got.Index != 1 {
		t.Fatalf("expected 1 below 0, got %d", got.Index)
	}
}

func TestNeighbor_PrefersNearestEdgeThenCenterThenIndex(t *testing.T) {
	set := NewSet([]tiling.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
		// Two stacked monitors to the right, both touching monitor 0.
		{X: 1000, Y: 500, Width: 1000, Height: 1000},
		{X: 1000, Y: -400, Width: 1000, Height: 1000},
		// Further away but perfectly centered.
		{X: 2500, Y: 0, Width: 1000, Height: 1000},
	})

	got, ok := set.Neighbor(0, tiling.DirRight)
	if !ok || got.Index != 2 {
		t.Fatalf("expected monitor 2 (closer center), got (%d, %v)", got.Index, ok)
	}

	tie := NewSet([]tiling.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
		{X: 1000, Y: 500, Width: 1000, Height: 1000},
		{X: 1000, Y: -500, Width: 1000, Height: 1000},
	})
	got, ok = tie.Neighbor(0, tiling.DirRight)
	if !ok || got.Index != 1 {
		t.Fatalf("expected lowest index on exact tie, got (%d, %v)", got.Index, ok)
	}
}

func TestNeighbor_UnknownIndex(t *testing.T) {
	if _, ok := dualHead().Neighbor(7, tiling.DirLeft); ok {
		t.Fatalf("expected false for unknown monitor")
	}
}

func TestContaining(t *testing.T) {
	set := dualHead()

	tests := []struct {
		name string
		rect tiling.Rect
		want int
	}{
		{"fully on first", tiling.Rect{X: 100, Y: 100, Width: 400, Height: 300}, 0},
		{"straddling, mostly second", tiling.Rect{X: 1800, Y: 100, Width: 400, Height: 300}, 1},
		{"off screen right", tiling.Rect{X: 5000, Y: 100, Width: 400, Height: 300}, 1},
		{"off screen left", tiling.Rect{X: -900, Y: 100, Width: 400, Height: 300}, 0},
		{"point on second", tiling.Rect{X: 1920, Y: 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := set.Containing(tt.rect)
			if !ok || got.Index != tt.want {
				t.Fatalf("Containing(%v) = (%d, %v), want %d", tt.rect, got.Index, ok, tt.want)
			}
		})
	}
}

func TestContaining_EqualOverlapPicksLowestIndex(t *testing.T) {
	set := dualHead()
	got, ok := set.Containing(tiling.Rect{X: 1820, Y: 0, Width: 200, Height: 100})
	if !ok || got.Index != 0 {
		t.Fatalf("expected monitor 0 on tie, got (%d, %v)", got.Index, ok)
	}
}

func TestEmptySetAnswersNothing(t *testing.T) {
	set := NewSet(nil)
	if _, ok := set.Containing(tiling.Rect{Width: 10, Height: 10}); ok {
		t.Fatalf("expected no containing monitor")
	}
	if _, ok := set.ContainingPoint(tiling.Point{}); ok {
		t.Fatalf("expected no monitor for point")
	}
	if _, ok := set.Neighbor(0, tiling.DirRight); ok {
		t.Fatalf("expected no neighbor")
	}
	if order := set.NaturalOrder(); order != nil {
		t.Fatalf("expected nil order, got %v", order)
	}
}

func TestNaturalOrder(t *testing.T) {
	set := NewSet([]tiling.Rect{
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
		{X: 0, Y: 1080, Width: 1920, Height: 1080},
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 3840, Y: 0, Width: 1080, Height: 1920},
	})
	want := []int{2, 1, 0, 3}
	if got := set.NaturalOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("NaturalOrder() = %v, want %v", got, want)
	}
}

func TestBounds(t *testing.T) {
	set := NewSet([]tiling.Rect{
		{X: 0, Y: 200, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 2560, Height: 1440},
	})
	want := tiling.Rect{X: 0, Y: 0, Width: 4480, Height: 1440}
	if got := set.Bounds(); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}
}

func TestNewSetFromInfosReindexes(t *testing.T) {
	set := NewSetFromInfos([]Info{
		{Index: 9, Name: "DP-1", Rect: tiling.Rect{Width: 10, Height: 10}},
		{Index: 4, Name: "HDMI-1", Rect: tiling.Rect{X: 10, Width: 10, Height: 10}},
	})
	m, ok := set.Get(1)
	if !ok || m.Index != 1 || m.Name != "HDMI-1" {
		t.Fatalf("unexpected monitor %+v", m)
	}
}
