package corners

import (
	"errors"
	"testing"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

type staticBounds tiling.Rect

func (b staticBounds) Bounds() tiling.Rect { return tiling.Rect(b) }

type fakeSurfaces struct {
	moves  map[tiling.Corner][]tiling.Rect
	raises map[tiling.Corner]int
	hides  map[tiling.Corner]int
	err    error
}

func newFakeSurfaces() *fakeSurfaces {
	return &fakeSurfaces{
		moves:  make(map[tiling.Corner][]tiling.Rect),
		raises: make(map[tiling.Corner]int),
		hides:  make(map[tiling.Corner]int),
	}
}

func (f *fakeSurfaces) MoveCorner(c tiling.Corner, r tiling.Rect) error {
	f.moves[c] = append(f.moves[c], r)
	return f.err
}

func (f *fakeSurfaces) RaiseCorner(c tiling.Corner) error {
	f.raises[c]++
	return f.err
}

func (f *fakeSurfaces) HideCorner(c tiling.Corner) error {
	f.hides[c]++
	return nil
}

var screen1080 = staticBounds{X: 0, Y: 0, Width: 3840, Height: 1080}

func TestUpdatePositionAnchorsTopLeft(t *testing.T) {
	m := NewManager(screen1080, Config{Size: 10})
	m.EnableCorner(tiling.CornerTopLeft, true)

	if err := m.Update(NewUpdateMask(UpdatePosition)); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := m.State(tiling.CornerTopLeft).TriggerRect
	want := tiling.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if got != want {
		t.Fatalf("trigger rect = %v, want %v", got, want)
	}
}

func TestTriggerRectForEachCorner(t *testing.T) {
	screen := tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	tests := []struct {
		corner tiling.Corner
		want   tiling.Rect
	}{
		{tiling.CornerTopLeft, tiling.Rect{X: 0, Y: 0, Width: 32, Height: 32}},
		{tiling.CornerTopRight, tiling.Rect{X: 1888, Y: 0, Width: 32, Height: 32}},
		{tiling.CornerBottomLeft, tiling.Rect{X: 0, Y: 1048, Width: 32, Height: 32}},
		{tiling.CornerBottomRight, tiling.Rect{X: 1888, Y: 1048, Width: 32, Height: 32}},
	}
	for _, tt := range tests {
		if got := TriggerRect(screen, tt.corner, DefaultSize); got != tt.want {
			t.Errorf("TriggerRect(%s) = %v, want %v", tt.corner, got, tt.want)
		}
	}

	tiny := tiling.Rect{Width: 20, Height: 8}
	if got := TriggerRect(tiny, tiling.CornerBottomRight, 32); got != (tiling.Rect{Width: 20, Height: 8}) {
		t.Fatalf("expected trigger to shrink to screen, got %v", got)
	}
}

func TestDisabledCornerDoesNotFire(t *testing.T) {
	m := NewManager(screen1080, Config{})
	m.EnableActions(true)
	m.EnableCorner(tiling.CornerTopLeft, true)
	m.EnableCorner(tiling.CornerTopLeft, false)

	if m.Enter(tiling.CornerTopLeft) {
		t.Fatalf("disabled corner fired")
	}
	if st := m.State(tiling.CornerTopLeft); st.ActionEnabled {
		t.Fatalf("disabling should clear ActionEnabled")
	}
}

func TestEnterRequiresGlobalAndCornerEnablement(t *testing.T) {
	m := NewManager(screen1080, Config{})
	m.EnableCorner(tiling.CornerBottomRight, true)

	if m.Enter(tiling.CornerBottomRight) {
		t.Fatalf("fired with global actions disabled")
	}
	m.Leave(tiling.CornerBottomRight)

	m.EnableActions(true)
	if !m.Enter(tiling.CornerBottomRight) {
		t.Fatalf("expected corner to fire")
	}
	if m.Enter(tiling.CornerBottomRight) {
		t.Fatalf("corner fired twice without leaving")
	}
	if !m.Inside(tiling.CornerBottomRight) {
		t.Fatalf("expected pointer to be tracked inside")
	}

	m.Leave(tiling.CornerBottomRight)
	if !m.Enter(tiling.CornerBottomRight) {
		t.Fatalf("expected corner to fire again after leave")
	}
}

func TestUpdateSkipsDisabledAndKeepsFlags(t *testing.T) {
	surfaces := newFakeSurfaces()
	m := NewManager(screen1080, Config{Surfaces: surfaces})
	m.EnableActions(true)
	m.EnableCorner(tiling.CornerTopRight, true)

	for i := 0; i < 3; i++ {
		if err := m.Update(UpdateAll); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	if len(surfaces.moves[tiling.CornerTopLeft]) != 0 || surfaces.raises[tiling.CornerTopLeft] != 0 {
		t.Fatalf("disabled corner was updated")
	}
	moves := surfaces.moves[tiling.CornerTopRight]
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	for _, r := range moves {
		if r != moves[0] {
			t.Fatalf("redundant updates produced different geometry: %v", moves)
		}
	}
	if surfaces.raises[tiling.CornerTopRight] != 3 {
		t.Fatalf("expected 3 raises, got %d", surfaces.raises[tiling.CornerTopRight])
	}

	st := m.State(tiling.CornerTopRight)
	if !st.Enabled || !st.ActionEnabled || !m.ActionsEnabled() {
		t.Fatalf("update reset enablement: %+v", st)
	}
}

func TestUpdateStackOnlyLeavesPosition(t *testing.T) {
	surfaces := newFakeSurfaces()
	m := NewManager(screen1080, Config{Surfaces: surfaces})
	m.EnableCorner(tiling.CornerTopLeft, true)

	if err := m.Update(NewUpdateMask(UpdateStack)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(surfaces.moves[tiling.CornerTopLeft]) != 0 {
		t.Fatalf("stack-only update moved the surface")
	}
	if !m.State(tiling.CornerTopLeft).TriggerRect.Empty() {
		t.Fatalf("stack-only update computed a trigger rect")
	}
}

func TestUpdateJoinsSurfaceErrors(t *testing.T) {
	surfaces := newFakeSurfaces()
	surfaces.err = errors.New("bad window")
	m := NewManager(screen1080, Config{Surfaces: surfaces})
	m.EnableCorner(tiling.CornerTopLeft, true)

	err := m.Update(UpdateAll)
	if !errors.Is(err, surfaces.err) {
		t.Fatalf("expected surface error, got %v", err)
	}
}

func TestDisableHidesSurface(t *testing.T) {
	surfaces := newFakeSurfaces()
	m := NewManager(screen1080, Config{Surfaces: surfaces})
	m.EnableCorner(tiling.CornerBottomLeft, true)
	m.EnableCorner(tiling.CornerBottomLeft, false)
	m.EnableCorner(tiling.CornerBottomLeft, false)

	if surfaces.hides[tiling.CornerBottomLeft] != 1 {
		t.Fatalf("expected one hide, got %d", surfaces.hides[tiling.CornerBottomLeft])
	}
}

func TestHit(t *testing.T) {
	m := NewManager(screen1080, Config{Size: 4})
	m.EnableCorner(tiling.CornerBottomRight, true)
	if err := m.Update(NewUpdateMask(UpdatePosition)); err != nil {
		t.Fatalf("update: %v", err)
	}

	if c, ok := m.Hit(tiling.Point{X: 3839, Y: 1079}); !ok || c != tiling.CornerBottomRight {
		t.Fatalf("expected bottom-right hit, got (%s, %v)", c, ok)
	}
	if _, ok := m.Hit(tiling.Point{X: 0, Y: 0}); ok {
		t.Fatalf("disabled top-left should not be hit")
	}
}

func TestUpdateMaskString(t *testing.T) {
	if got := UpdateAll.String(); got != "position|stack" {
		t.Fatalf("UpdateAll.String() = %q", got)
	}
	if got := (UpdateMask{}).String(); got != "none" {
		t.Fatalf("empty mask String() = %q", got)
	}
	if !NewUpdateMask(UpdateStack).Has(UpdateStack) || NewUpdateMask(UpdateStack).Has(UpdatePosition) {
		t.Fatalf("unexpected mask membership")
	}
}
