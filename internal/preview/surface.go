package preview

import (
	"time"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

// Paint describes the contents of the overlay surface. Strokes are 1 px
// outlines in surface coordinates; a stroke rect covers pixels X..X+Width-1
// and Y..Y+Height-1.
type Paint struct {
	Background Color
	Stroke     Color
	Strokes    []tiling.Rect
}

// Surface is the on-screen window backing the overlay.
type Surface interface {
	// ID identifies the surface to the stacking primitive.
	ID() uint32
	Map() error
	Unmap() error
	MoveResize(rect tiling.Rect) error
	// Invalidate marks a surface-local area for redraw.
	Invalidate(rect tiling.Rect) error
	// SetShape clips the visible and input shape to region. A nil region
	// restores the full rectangular shape.
	SetShape(region *tiling.Region) error
	Paint(p Paint) error
	Destroy() error
}

// SurfaceFactory allocates the overlay surface. alpha requests a surface on
// an ARGB visual.
type SurfaceFactory interface {
	CreateSurface(alpha bool) (Surface, error)
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func(alpha bool) (Surface, error)

// CreateSurface calls f.
func (f SurfaceFactoryFunc) CreateSurface(alpha bool) (Surface, error) {
	return f(alpha)
}

// Stacker places a surface directly beneath the window holding input focus.
type Stacker interface {
	LowerBeneathFocus(surface uint32, timestamp uint32) error
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d unless the returned Timer is stopped first.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules callbacks with time.AfterFunc.
var RealScheduler Scheduler = realScheduler{}
