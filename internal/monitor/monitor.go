// Package monitor answers geometric questions about the physical monitors of
// one screen: which monitor holds a window, which monitor lies next to another,
// and in what order monitors should be cycled.
//
// A Set is an immutable snapshot. When the monitor configuration changes the
// host builds a new Set and swaps it in; nothing here mutates in place.
package monitor

import (
	"sort"

	"github.com/1broseidon/wmgeom/internal/tiling"
)

// Info is one physical display within the screen coordinate space.
type Info struct {
	Index int
	Name  string
	Rect  tiling.Rect
}

// Set holds the monitors of one screen.
type Set struct {
	monitors []Info
}

// NewSet builds a snapshot from monitor rectangles. Indices are assigned in
// slice order.
func NewSet(rects []tiling.Rect) *Set {
	infos := make([]Info, len(rects))
	for i, r := range rects {
		infos[i] = Info{Index: i, Rect: r}
	}
	return &Set{monitors: infos}
}

// NewSetFromInfos builds a snapshot from fully described monitors. Indices are
// reassigned in slice order so they always match positions in the set.
func NewSetFromInfos(infos []Info) *Set {
	out := make([]Info, len(infos))
	for i, info := range infos {
		info.Index = i
		out[i] = info
	}
	return &Set{monitors: out}
}

// Len returns the number of monitors.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.monitors)
}

// All returns a copy of the monitors in index order.
func (s *Set) All() []Info {
	if s == nil {
		return nil
	}
	out := make([]Info, len(s.monitors))
	copy(out, s.monitors)
	return out
}

// Get returns the monitor with the given index.
func (s *Set) Get(index int) (Info, bool) {
	if s == nil || index < 0 || index >= len(s.monitors) {
		return Info{}, false
	}
	return s.monitors[index], true
}

// Bounds returns the smallest rectangle covering every monitor.
func (s *Set) Bounds() tiling.Rect {
	var b tiling.Rect
	if s == nil {
		return b
	}
	for _, m := range s.monitors {
		b = b.Union(m.Rect)
	}
	return b
}

// Containing returns the monitor sharing the largest area with r. When r
// overlaps no monitor at all, the monitor whose center is nearest to r's
// center is returned. A zero-area r is resolved as a point.
func (s *Set) Containing(r tiling.Rect) (Info, bool) {
	if s.Len() == 0 {
		return Info{}, false
	}
	if r.Empty() {
		return s.ContainingPoint(tiling.Point{X: r.X, Y: r.Y})
	}

	best := -1
	bestArea := 0
	for i, m := range s.monitors {
		area := m.Rect.Intersect(r).Area()
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best >= 0 {
		return s.monitors[best], true
	}
	return s.nearestCenter(r.Center()), true
}

// ContainingPoint returns the monitor containing p, or the monitor whose
// center is nearest when p lies outside every monitor.
func (s *Set) ContainingPoint(p tiling.Point) (Info, bool) {
	if s.Len() == 0 {
		return Info{}, false
	}
	for _, m := range s.monitors {
		if m.Rect.Contains(p) {
			return m, true
		}
	}
	return s.nearestCenter(p), true
}

func (s *Set) nearestCenter(p tiling.Point) Info {
	best := 0
	bestDist := -1
	for i, m := range s.monitors {
		c := m.Rect.Center()
		dx := c.X - p.X
		dy := c.Y - p.Y
		dist := dx*dx + dy*dy
		if bestDist < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return s.monitors[best]
}

// NaturalOrder returns monitor indices sorted left to right, then top to
// bottom. It is the order used to cycle keyboard focus across monitors.
func (s *Set) NaturalOrder() []int {
	if s.Len() == 0 {
		return nil
	}
	order := make([]int, len(s.monitors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a := s.monitors[order[i]].Rect
		b := s.monitors[order[j]].Rect
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return order[i] < order[j]
	})
	return order
}
