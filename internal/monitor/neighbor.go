package monitor

import "github.com/1broseidon/wmgeom/internal/tiling"

// Neighbor returns the monitor adjacent to monitor from in direction dir.
//
// A candidate must lie entirely on the dir side of from and overlap it along
// the perpendicular axis. Candidates are ranked by the gap between the facing
// edges, then by the offset between centers along the perpendicular axis, then
// by lowest index. Returns false when from is at the edge of the layout.
func (s *Set) Neighbor(from int, dir tiling.Direction) (Info, bool) {
	current, ok := s.Get(from)
	if !ok {
		return Info{}, false
	}
	cur := current.Rect
	cc := cur.Center()

	bestIdx := -1
	bestGap := 0
	bestOffset := 0

	for i, m := range s.monitors {
		if i == from {
			continue
		}
		r := m.Rect
		c := r.Center()

		var gap, offset int
		var aligned bool
		switch dir {
		case tiling.DirRight:
			gap = r.X - cur.Right()
			aligned = r.Y < cur.Bottom() && cur.Y < r.Bottom()
			offset = abs(c.Y - cc.Y)
		case tiling.DirLeft:
			gap = cur.X - r.Right()
			aligned = r.Y < cur.Bottom() && cur.Y < r.Bottom()
			offset = abs(c.Y - cc.Y)
		case tiling.DirDown:
			gap = r.Y - cur.Bottom()
			aligned = r.X < cur.Right() && cur.X < r.Right()
			offset = abs(c.X - cc.X)
		case tiling.DirUp:
			gap = cur.Y - r.Bottom()
			aligned = r.X < cur.Right() && cur.X < r.Right()
			offset = abs(c.X - cc.X)
		default:
			return Info{}, false
		}

		if gap < 0 || !aligned {
			continue
		}

		// Iteration runs in index order, so strict comparisons keep the
		// lowest index on exact ties.
		if bestIdx == -1 || gap < bestGap || (gap == bestGap && offset < bestOffset) {
			bestIdx = i
			bestGap = gap
			bestOffset = offset
		}
	}

	if bestIdx < 0 {
		return Info{}, false
	}
	return s.monitors[bestIdx], true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
