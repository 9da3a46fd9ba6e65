package tiling

// Region is a set of pixels stored as disjoint rectangles.
//
// It only supports the operations needed to build overlay shapes: start from a
// rectangle and carve other rectangles out of it.
type Region struct {
	rects []Rect
}

// NewRegion returns a region covering r. An empty r yields an empty region.
func NewRegion(r Rect) *Region {
	reg := &Region{}
	if !r.Empty() {
		reg.rects = []Rect{r}
	}
	return reg
}

// Subtract removes every pixel of r from the region. Subtracting an empty
// rectangle leaves the region unchanged.
func (g *Region) Subtract(r Rect) *Region {
	if r.Empty() || len(g.rects) == 0 {
		return g
	}

	out := make([]Rect, 0, len(g.rects)+3)
	for _, piece := range g.rects {
		out = append(out, subtractRect(piece, r)...)
	}
	g.rects = out
	return g
}

// subtractRect splits a into at most four bands that do not intersect b:
// full-width bands above and below the overlap, then left and right stubs
// within the overlap's rows.
func subtractRect(a, b Rect) []Rect {
	isect := a.Intersect(b)
	if isect.Empty() {
		return []Rect{a}
	}

	var pieces []Rect
	if isect.Y > a.Y {
		pieces = append(pieces, Rect{X: a.X, Y: a.Y, Width: a.Width, Height: isect.Y - a.Y})
	}
	if isect.Bottom() < a.Bottom() {
		pieces = append(pieces, Rect{X: a.X, Y: isect.Bottom(), Width: a.Width, Height: a.Bottom() - isect.Bottom()})
	}
	if isect.X > a.X {
		pieces = append(pieces, Rect{X: a.X, Y: isect.Y, Width: isect.X - a.X, Height: isect.Height})
	}
	if isect.Right() < a.Right() {
		pieces = append(pieces, Rect{X: isect.Right(), Y: isect.Y, Width: a.Right() - isect.Right(), Height: isect.Height})
	}
	return pieces
}

// Rects returns a copy of the region's disjoint rectangles.
func (g *Region) Rects() []Rect {
	if g == nil {
		return nil
	}
	out := make([]Rect, len(g.rects))
	copy(out, g.rects)
	return out
}

// Area returns the number of pixels in the region.
func (g *Region) Area() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, r := range g.rects {
		total += r.Area()
	}
	return total
}

// IsEmpty reports whether the region has no pixels.
func (g *Region) IsEmpty() bool {
	return g == nil || len(g.rects) == 0
}

// Contains reports whether p belongs to the region.
func (g *Region) Contains(p Point) bool {
	if g == nil {
		return false
	}
	for _, r := range g.rects {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of the region.
func (g *Region) Bounds() Rect {
	var b Rect
	if g == nil {
		return b
	}
	for _, r := range g.rects {
		b = b.Union(r)
	}
	return b
}

// FrameRegion returns the border band of a width x height surface: the outer
// rectangle (0,0,width,height) minus the inner rectangle inset by border on
// every side. When the surface is too small for an interior the whole outer
// rectangle is returned.
func FrameRegion(width, height, border int) *Region {
	outer := Rect{Width: width, Height: height}
	inner := Rect{
		X:      border,
		Y:      border,
		Width:  width - 2*border,
		Height: height - 2*border,
	}
	return NewRegion(outer).Subtract(inner)
}
