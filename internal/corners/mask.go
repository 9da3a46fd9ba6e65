package corners

import "strings"

// UpdateFlag names one aspect of the corner trigger surfaces to refresh.
type UpdateFlag int

const (
	// UpdatePosition recomputes trigger rectangles from the screen geometry.
	UpdatePosition UpdateFlag = iota
	// UpdateStack re-raises the trigger surfaces above other windows.
	UpdateStack
)

func (f UpdateFlag) String() string {
	switch f {
	case UpdatePosition:
		return "position"
	case UpdateStack:
		return "stack"
	default:
		return "unknown"
	}
}

// UpdateMask is a set of UpdateFlag values.
type UpdateMask struct {
	position bool
	stack    bool
}

// NewUpdateMask returns a mask containing the given flags.
func NewUpdateMask(flags ...UpdateFlag) UpdateMask {
	var m UpdateMask
	for _, f := range flags {
		m = m.With(f)
	}
	return m
}

// UpdateAll refreshes both position and stacking.
var UpdateAll = NewUpdateMask(UpdatePosition, UpdateStack)

// With returns a copy of m that also contains f.
func (m UpdateMask) With(f UpdateFlag) UpdateMask {
	switch f {
	case UpdatePosition:
		m.position = true
	case UpdateStack:
		m.stack = true
	}
	return m
}

// Has reports whether f is in the mask.
func (m UpdateMask) Has(f UpdateFlag) bool {
	switch f {
	case UpdatePosition:
		return m.position
	case UpdateStack:
		return m.stack
	default:
		return false
	}
}

// Empty reports whether the mask holds no flags.
func (m UpdateMask) Empty() bool {
	return !m.position && !m.stack
}

func (m UpdateMask) String() string {
	var parts []string
	if m.position {
		parts = append(parts, UpdatePosition.String())
	}
	if m.stack {
		parts = append(parts, UpdateStack.String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
