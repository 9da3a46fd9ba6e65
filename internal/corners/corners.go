// Package corners tracks hot corner trigger zones for one screen.
//
// The manager only keeps state and geometry. It owns no timer: the host
// reports pointer crossings through Enter and Leave and decides how long the
// pointer has to dwell before acting on a fired corner.
package corners

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

// DefaultSize is the side length of a corner trigger square in pixels.
const DefaultSize = 32

// BoundsSource supplies the current screen rectangle.
type BoundsSource interface {
	Bounds() tiling.Rect
}

// Surfaces places and stacks the per-corner trigger surfaces. A nil Surfaces
// makes the manager a pure geometry tracker.
type Surfaces interface {
	MoveCorner(corner tiling.Corner, rect tiling.Rect) error
	RaiseCorner(corner tiling.Corner) error
	HideCorner(corner tiling.Corner) error
}

// State is the tracked state of a single corner.
type State struct {
	Enabled       bool
	TriggerRect   tiling.Rect
	ActionEnabled bool
}

// Config configures a Manager.
type Config struct {
	Size     int
	Surfaces Surfaces
	Logger   *slog.Logger
}

// Manager tracks enablement and trigger geometry of the four screen corners.
type Manager struct {
	mu             sync.Mutex
	bounds         BoundsSource
	surfaces       Surfaces
	size           int
	actionsEnabled bool
	corners        [4]State
	inside         [4]bool
	logger         *slog.Logger
}

// NewManager creates a manager with every corner disabled and actions off.
func NewManager(bounds BoundsSource, cfg Config) *Manager {
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		bounds:   bounds,
		surfaces: cfg.Surfaces,
		size:     size,
		logger:   logger,
	}
}

// EnableCorner toggles whether corner is a trigger zone. Enabling arms the
// corner's action; disabling clears it and hides the trigger surface.
func (m *Manager) EnableCorner(corner tiling.Corner, enabled bool) {
	if !corner.Valid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st := &m.corners[corner]
	if st.Enabled == enabled {
		return
	}
	st.Enabled = enabled
	st.ActionEnabled = enabled
	if enabled {
		m.logger.Debug("corner enabled", "corner", corner)
		return
	}

	m.inside[corner] = false
	m.logger.Debug("corner disabled", "corner", corner)
	if m.surfaces != nil {
		if err := m.surfaces.HideCorner(corner); err != nil {
			m.logger.Warn("failed to hide corner surface", "corner", corner, "error", err)
		}
	}
}

// EnableActions sets the global action switch. A corner fires only when both
// it and the global switch are enabled.
func (m *Manager) EnableActions(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actionsEnabled = enabled
}

// ActionsEnabled reports the global action switch.
func (m *Manager) ActionsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actionsEnabled
}

// Update refreshes the enabled corners according to mask. Disabled corners
// are skipped. Calling Update repeatedly with the same screen geometry is
// harmless, and it never changes enablement.
func (m *Manager) Update(mask UpdateMask) error {
	if mask.Empty() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var screen tiling.Rect
	if m.bounds != nil {
		screen = m.bounds.Bounds()
	}

	var errs []error
	for _, corner := range tiling.Corners {
		st := &m.corners[corner]
		if !st.Enabled {
			continue
		}

		if mask.Has(UpdatePosition) {
			st.TriggerRect = TriggerRect(screen, corner, m.size)
			if m.surfaces != nil && !st.TriggerRect.Empty() {
				if err := m.surfaces.MoveCorner(corner, st.TriggerRect); err != nil {
					errs = append(errs, fmt.Errorf("move %s corner: %w", corner, err))
				}
			}
		}
		if mask.Has(UpdateStack) && m.surfaces != nil {
			if err := m.surfaces.RaiseCorner(corner); err != nil {
				errs = append(errs, fmt.Errorf("raise %s corner: %w", corner, err))
			}
		}
	}

	m.logger.Debug("corners updated", "mask", mask, "screen", screen)
	return errors.Join(errs...)
}

// Enter records that the pointer entered corner's trigger zone and reports
// whether its action fires. A fired corner stays quiet until Leave.
func (m *Manager) Enter(corner tiling.Corner) bool {
	if !corner.Valid() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st := &m.corners[corner]
	if !st.Enabled {
		return false
	}
	m.inside[corner] = true

	if !m.actionsEnabled || !st.ActionEnabled {
		return false
	}
	st.ActionEnabled = false
	m.logger.Debug("corner fired", "corner", corner)
	return true
}

// Leave records that the pointer left corner's trigger zone and re-arms it.
func (m *Manager) Leave(corner tiling.Corner) {
	if !corner.Valid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.inside[corner] = false
	if st := &m.corners[corner]; st.Enabled {
		st.ActionEnabled = true
	}
}

// Inside reports whether the pointer is currently inside corner's zone.
func (m *Manager) Inside(corner tiling.Corner) bool {
	if !corner.Valid() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inside[corner]
}

// State returns a snapshot of corner's state.
func (m *Manager) State(corner tiling.Corner) State {
	if !corner.Valid() {
		return State{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.corners[corner]
}

// Hit returns the enabled corner whose trigger rectangle contains p. Hosts
// that poll the pointer instead of using input windows resolve crossings
// with it.
func (m *Manager) Hit(p tiling.Point) (tiling.Corner, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, corner := range tiling.Corners {
		st := m.corners[corner]
		if st.Enabled && st.TriggerRect.Contains(p) {
			return corner, true
		}
	}
	return 0, false
}

// TriggerRect returns the size x size square anchored at corner of screen,
// shrunk to fit a screen smaller than size.
func TriggerRect(screen tiling.Rect, corner tiling.Corner, size int) tiling.Rect {
	if screen.Empty() || size <= 0 {
		return tiling.Rect{}
	}
	w := min(size, screen.Width)
	h := min(size, screen.Height)

	r := tiling.Rect{X: screen.X, Y: screen.Y, Width: w, Height: h}
	if corner.Right() {
		r.X = screen.Right() - w
	}
	if corner.Bottom() {
		r.Y = screen.Bottom() - h
	}
	return r
}
