package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/screen"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

type raiseCounter struct {
	moves  map[tiling.Corner]tiling.Rect
	raises int
}

func (c *raiseCounter) MoveCorner(corner tiling.Corner, r tiling.Rect) error {
	c.moves[corner] = r
	return nil
}
func (c *raiseCounter) RaiseCorner(tiling.Corner) error { c.raises++; return nil }
func (c *raiseCounter) HideCorner(tiling.Corner) error { return nil }

func single() *monitor.Set {
	return monitor.NewSetFromInfos([]monitor.Info{
		{Name: "eDP-1", Rect: tiling.Rect{Width: 1920, Height: 1080}},
	})
}

func docked() *monitor.Set {
	return monitor.NewSetFromInfos([]monitor.Info{
		{Name: "eDP-1", Rect: tiling.Rect{Width: 1920, Height: 1080}},
		{Name: "DP-1", Rect: tiling.Rect{X: 1920, Width: 2560, Height: 1440}},
	})
}

func TestReconcileDetectsHotplug(t *testing.T) {
	surfaces := &raiseCounter{moves: make(map[tiling.Corner]tiling.Rect)}
	scr := screen.New(screen.Options{CornerSize: 8, Corners: surfaces})
	scr.Corners().EnableCorner(tiling.CornerBottomRight, true)
	if err := scr.SetMonitors(single()); err != nil {
		t.Fatalf("set monitors: %v", err)
	}

	current := single()
	r := NewReconciler(ReconcilerConfig{}, scr, func() (*monitor.Set, error) { return current, nil })

	if r.ReconcileNow() {
		t.Fatalf("unchanged layout reported as changed")
	}
	if surfaces.raises != 1 {
		t.Fatalf("corners should be re-raised every pass, raises = %d", surfaces.raises)
	}

	current = docked()
	if !r.ReconcileNow() {
		t.Fatalf("hotplug not detected")
	}
	if scr.Monitors().Len() != 2 {
		t.Fatalf("screen not updated: %d monitors", scr.Monitors().Len())
	}
	if got, want := surfaces.moves[tiling.CornerBottomRight], (tiling.Rect{X: 4472, Y: 1432, Width: 8, Height: 8}); got != want {
		t.Fatalf("bottom-right corner = %v, want %v", got, want)
	}
}

func TestReconcileKeepsLayoutOnListError(t *testing.T) {
	scr := screen.New(screen.Options{})
	if err := scr.SetMonitors(docked()); err != nil {
		t.Fatalf("set monitors: %v", err)
	}
	r := NewReconciler(ReconcilerConfig{}, scr, func() (*monitor.Set, error) { return nil, errors.New("randr gone") })
	if r.ReconcileNow() {
		t.Fatalf("list error must not change the layout")
	}
	if scr.Monitors().Len() != 2 {
		t.Fatalf("layout dropped after list error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	scr := screen.New(screen.Options{})
	r := NewReconciler(ReconcilerConfig{Interval: time.Millisecond}, scr, func() (*monitor.Set, error) { return single(), nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestSameLayout(t *testing.T) {
	moved := monitor.NewSetFromInfos([]monitor.Info{
		{Name: "eDP-1", Rect: tiling.Rect{Y: 360, Width: 1920, Height: 1080}},
		{Name: "DP-1", Rect: tiling.Rect{X: 1920, Width: 2560, Height: 1440}},
	})
	tests := []struct {
		name string
		a, b *monitor.Set
		want bool
	}{
		{"identical", docked(), docked(), true},
		{"count differs", single(), docked(), false},
		{"moved", docked(), moved, false},
		{"both empty", nil, monitor.NewSet(nil), true},
		{"nil vs one", nil, single(), false},
	}
	for _, tt := range tests {
		if got := SameLayout(tt.a, tt.b); got != tt.want {
			t.Fatalf("%s: SameLayout = %t, want %t", tt.name, got, tt.want)
		}
	}
}
