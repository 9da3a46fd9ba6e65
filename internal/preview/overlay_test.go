package preview

import (
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

type fakeSurface struct {
	id          uint32
	mapped      bool
	maps        int
	unmaps      int
	moves       []tiling.Rect
	invalidated []tiling.Rect
	shapes      []*tiling.Region
	paints      []Paint
	destroys    int
	moveErr     error
}

func (s *fakeSurface) ID() uint32 { return s.id }

func (s *fakeSurface) Map() error {
	s.mapped = true
	s.maps++
	return nil
}

func (s *fakeSurface) Unmap() error {
	s.mapped = false
	s.unmaps++
	return nil
}

func (s *fakeSurface) MoveResize(r tiling.Rect) error {
	if s.moveErr != nil {
		return s.moveErr
	}
	s.moves = append(s.moves, r)
	return nil
}

func (s *fakeSurface) Invalidate(r tiling.Rect) error {
	s.invalidated = append(s.invalidated, r)
	return nil
}

func (s *fakeSurface) SetShape(region *tiling.Region) error {
	s.shapes = append(s.shapes, region)
	return nil
}

func (s *fakeSurface) Paint(p Paint) error {
	s.paints = append(s.paints, p)
	return nil
}

func (s *fakeSurface) Destroy() error {
	s.destroys++
	return nil
}

type fakeStacker struct {
	calls []uint32
	times []uint32
}

func (f *fakeStacker) LowerBeneathFocus(surface, timestamp uint32) error {
	f.calls = append(f.calls, surface)
	f.times = append(f.times, timestamp)
	return nil
}

type fakeTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (f *fakeScheduler) AfterFunc(_ time.Duration, fn func()) Timer {
	t := &fakeTimer{fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// fireAll runs every timer callback, including stopped ones, the way a timer
// that already fired while Stop raced with it would.
func (f *fakeScheduler) fireAll() {
	for _, t := range f.timers {
		if !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

type harness struct {
	overlay   *Overlay
	surface   *fakeSurface
	stacker   *fakeStacker
	scheduler *fakeScheduler
	creates   int
}

func newHarness(t *testing.T, alpha bool) *harness {
	t.Helper()
	h := &harness{
		surface:   &fakeSurface{id: 42},
		stacker:   &fakeStacker{},
		scheduler: &fakeScheduler{},
	}
	o, err := New(Options{
		Composited:  alpha,
		AlphaVisual: alpha,
		Theme:       DefaultTheme(),
		Factory: SurfaceFactoryFunc(func(bool) (Surface, error) {
			h.creates++
			return h.surface, nil
		}),
		Stacker:   h.stacker,
		Scheduler: h.scheduler,
		Timestamp: func() uint32 { return 1234 },
	})
	if err != nil {
		t.Fatalf("new overlay: %v", err)
	}
	h.overlay = o
	return h
}

func TestShowIsIdempotentForSameRect(t *testing.T) {
	h := newHarness(t, true)
	r := tiling.Rect{X: 10, Y: 20, Width: 300, Height: 200}

	if err := h.overlay.Show(r); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := h.overlay.Show(r); err != nil {
		t.Fatalf("second show: %v", err)
	}

	if len(h.surface.moves) != 1 {
		t.Fatalf("expected 1 move/resize, got %d", len(h.surface.moves))
	}
	if h.surface.maps != 1 || len(h.stacker.calls) != 1 {
		t.Fatalf("expected a single map and stack, got maps=%d stacks=%d", h.surface.maps, len(h.stacker.calls))
	}
	if h.stacker.calls[0] != 42 || h.stacker.times[0] != 1234 {
		t.Fatalf("unexpected stacking call surface=%d time=%d", h.stacker.calls[0], h.stacker.times[0])
	}
	if h.creates != 1 {
		t.Fatalf("expected surface to be allocated once, got %d", h.creates)
	}

	st := h.overlay.State()
	if !st.Visible || st.Rect != r || !st.HasAlpha {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestShowNewRectInvalidatesOldExtent(t *testing.T) {
	h := newHarness(t, true)
	r1 := tiling.Rect{X: 0, Y: 0, Width: 960, Height: 1080}
	r2 := tiling.Rect{X: 0, Y: 0, Width: 480, Height: 540}

	if err := h.overlay.Show(r1); err != nil {
		t.Fatalf("show r1: %v", err)
	}
	if err := h.overlay.Show(r2); err != nil {
		t.Fatalf("show r2: %v", err)
	}

	last := h.surface.invalidated[len(h.surface.invalidated)-1]
	if last.Width < r1.Width || last.Height < r1.Height || last.X != 0 || last.Y != 0 {
		t.Fatalf("invalidated %v does not cover previous extent %v", last, r1.Size())
	}
	if got := h.surface.moves[len(h.surface.moves)-1]; got != r2 {
		t.Fatalf("last move = %v, want %v", got, r2)
	}
}

func TestAlphaModeClearsShapeAndFills(t *testing.T) {
	h := newHarness(t, true)
	if err := h.overlay.Show(tiling.Rect{Width: 100, Height: 50}); err != nil {
		t.Fatalf("show: %v", err)
	}

	if shape := h.surface.shapes[0]; shape != nil {
		t.Fatalf("alpha mode should not clip, got %v", shape.Rects())
	}
	p := h.surface.paints[0]
	if p.Background.A != DefaultSelectionAlpha {
		t.Fatalf("fill alpha = %v, want %v", p.Background.A, DefaultSelectionAlpha)
	}
	if p.Stroke.A != 1 {
		t.Fatalf("outline should be opaque, got alpha %v", p.Stroke.A)
	}
}

func TestOutlineModeClipsToFrame(t *testing.T) {
	h := newHarness(t, false)
	r := tiling.Rect{X: 50, Y: 60, Width: 200, Height: 100}
	if err := h.overlay.Show(r); err != nil {
		t.Fatalf("show: %v", err)
	}

	shape := h.surface.shapes[0]
	if shape == nil {
		t.Fatalf("outline mode must set a shape")
	}
	want := r.Width*r.Height - (r.Width-2*OutlineWidth)*(r.Height-2*OutlineWidth)
	if got := shape.Area(); got != want {
		t.Fatalf("shape area = %d, want %d", got, want)
	}
	if shape.Contains(tiling.Point{X: 100, Y: 50}) {
		t.Fatalf("frame interior should be clipped away")
	}
	if p := h.surface.paints[0]; p.Background != OutlineColor {
		t.Fatalf("outline background = %v, want %v", p.Background, OutlineColor)
	}
	if st := h.overlay.State(); st.HasAlpha {
		t.Fatalf("expected outline mode")
	}
}

func TestOutlineModeChosenWhenOnlyOneCapabilityPresent(t *testing.T) {
	o, err := New(Options{
		Composited:  true,
		AlphaVisual: false,
		Factory:     SurfaceFactoryFunc(func(bool) (Surface, error) { return &fakeSurface{}, nil }),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if o.HasAlpha() {
		t.Fatalf("expected outline mode without an ARGB visual")
	}
}

func TestHideKeepsRectAndAllowsReshow(t *testing.T) {
	h := newHarness(t, false)
	r := tiling.Rect{Width: 100, Height: 100}

	if err := h.overlay.Show(r); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := h.overlay.Hide(); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if err := h.overlay.Hide(); err != nil {
		t.Fatalf("second hide: %v", err)
	}
	if h.surface.unmaps != 1 {
		t.Fatalf("expected one unmap, got %d", h.surface.unmaps)
	}

	st := h.overlay.State()
	if st.Visible || st.Rect != r {
		t.Fatalf("unexpected state after hide %+v", st)
	}

	if err := h.overlay.Show(r); err != nil {
		t.Fatalf("reshow: %v", err)
	}
	if !h.surface.mapped || len(h.surface.moves) != 2 {
		t.Fatalf("hidden preview must be remapped and moved, mapped=%v moves=%d", h.surface.mapped, len(h.surface.moves))
	}
}

func TestDelayedShowCoalesces(t *testing.T) {
	h := newHarness(t, true)

	for i := 1; i <= 5; i++ {
		r := tiling.Rect{X: i, Width: 100, Height: 100}
		if err := h.overlay.ShowAfter(r, 100*time.Millisecond); err != nil {
			t.Fatalf("show after: %v", err)
		}
	}
	if !h.overlay.Pending() {
		t.Fatalf("expected a pending show")
	}
	if len(h.surface.moves) != 0 {
		t.Fatalf("delayed show painted early")
	}

	h.scheduler.fireAll()

	if len(h.surface.moves) != 1 {
		t.Fatalf("expected exactly one paint, got %d moves", len(h.surface.moves))
	}
	if got := h.surface.moves[0]; got.X != 5 {
		t.Fatalf("expected last request to win, got %v", got)
	}
	if h.overlay.Pending() {
		t.Fatalf("pending flag not cleared")
	}
}

func TestHideCancelsDelayedShow(t *testing.T) {
	h := newHarness(t, true)

	if err := h.overlay.ShowAfter(tiling.Rect{Width: 10, Height: 10}, time.Second); err != nil {
		t.Fatalf("show after: %v", err)
	}
	if err := h.overlay.Hide(); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if !h.scheduler.timers[0].stopped {
		t.Fatalf("hide did not stop the pending timer")
	}

	h.scheduler.fireAll()
	if h.creates != 0 || len(h.surface.moves) != 0 {
		t.Fatalf("cancelled show still painted")
	}
}

func TestImmediateShowSupersedesDelayedShow(t *testing.T) {
	h := newHarness(t, true)
	delayed := tiling.Rect{Width: 10, Height: 10}
	now := tiling.Rect{X: 500, Width: 20, Height: 20}

	if err := h.overlay.ShowAfter(delayed, time.Second); err != nil {
		t.Fatalf("show after: %v", err)
	}
	if err := h.overlay.Show(now); err != nil {
		t.Fatalf("show: %v", err)
	}
	h.scheduler.fireAll()

	if len(h.surface.moves) != 1 || h.surface.moves[0] != now {
		t.Fatalf("expected only the immediate show, got %v", h.surface.moves)
	}
}

func TestAllocationFailureAbortsShow(t *testing.T) {
	allocErr := errors.New("out of window ids")
	o, err := New(Options{
		Factory: SurfaceFactoryFunc(func(bool) (Surface, error) { return nil, allocErr }),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	err = o.Show(tiling.Rect{Width: 10, Height: 10})
	if !errors.Is(err, allocErr) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if st := o.State(); st.Visible || st.Rect != (tiling.Rect{}) {
		t.Fatalf("failed show left state behind: %+v", st)
	}
}

func TestMoveFailureLeavesPreviewHidden(t *testing.T) {
	h := newHarness(t, false)
	h.surface.moveErr = errors.New("bad window")

	if err := h.overlay.Show(tiling.Rect{Width: 10, Height: 10}); err == nil {
		t.Fatalf("expected error")
	}
	if h.overlay.State().Visible || h.surface.mapped {
		t.Fatalf("preview should not stay mapped after a failed move")
	}
}

func TestDestroyReleasesOnceAndRejectsShow(t *testing.T) {
	h := newHarness(t, true)
	if err := h.overlay.ShowAfter(tiling.Rect{Width: 10, Height: 10}, 0); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := h.overlay.ShowAfter(tiling.Rect{Width: 20, Height: 20}, time.Second); err != nil {
		t.Fatalf("show after: %v", err)
	}

	if err := h.overlay.Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := h.overlay.Destroy(); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
	if h.surface.destroys != 1 {
		t.Fatalf("expected surface destroyed once, got %d", h.surface.destroys)
	}

	h.scheduler.fireAll()
	if len(h.surface.moves) != 1 {
		t.Fatalf("pending show ran after destroy")
	}
	if err := h.overlay.Show(tiling.Rect{Width: 5, Height: 5}); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
}

func TestSetThemeRepaintsVisibleAlphaPreview(t *testing.T) {
	h := newHarness(t, true)
	if err := h.overlay.Show(tiling.Rect{Width: 10, Height: 10}); err != nil {
		t.Fatalf("show: %v", err)
	}

	accent, err := ParseColor("#ff0000", 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := h.overlay.SetTheme(Theme{Accent: accent, SelectionAlpha: 0.5}); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	last := h.surface.paints[len(h.surface.paints)-1]
	if last.Background.A != 0.5 || last.Background.Color.Hex() != "#ff0000" {
		t.Fatalf("unexpected fill after theme change: %v", last.Background)
	}
	if got := h.overlay.State().Color; got != last.Background {
		t.Fatalf("state color %v, want %v", got, last.Background)
	}
}

func TestNewRequiresFactory(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without a surface factory")
	}
}
