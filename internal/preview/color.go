package preview

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultSelectionAlpha is the fill opacity used when the theme does not
// provide one.
const DefaultSelectionAlpha = float64(0x40) / 0xFF

// OutlineColor is the fixed border color of outline mode.
var OutlineColor = NewColor(0.17255, 0.65490, 0.97255, 1.0)

// DefaultAccent is the accent used when no theme color is configured.
var DefaultAccent = OutlineColor

// Color is an RGB color with straight (non-premultiplied) alpha.
type Color struct {
	colorful.Color
	A float64
}

// NewColor builds a color from components in [0,1].
func NewColor(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// ParseColor parses "#rrggbb" or "#rgb" and attaches alpha.
func ParseColor(hex string, alpha float64) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return Color{Color: c, A: alpha}, nil
}

// Opaque returns the color at full opacity.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Pixel encodes the color as a premultiplied ARGB32 pixel, the format of
// 32-bit TrueColor visuals.
func (c Color) Pixel() uint32 {
	cl := c.Clamped()
	a := clamp01(c.A)
	return channel(a)<<24 | channel(cl.R*a)<<16 | channel(cl.G*a)<<8 | channel(cl.B*a)
}

// RGBPixel encodes the color as a 24-bit RGB pixel, ignoring alpha.
func (c Color) RGBPixel() uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func (c Color) String() string {
	return fmt.Sprintf("%s@%.2f", c.Color.Hex(), c.A)
}

func channel(v float64) uint32 {
	return uint32(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Theme carries the style values the overlay reads. The host re-reads them
// from its theme and passes a new Theme on theme changes.
type Theme struct {
	// Accent is the selection background color.
	Accent Color
	// SelectionAlpha is the fill opacity in (0,1]. Other values fall back to
	// DefaultSelectionAlpha.
	SelectionAlpha float64
}

// DefaultTheme returns the theme used when the host supplies none.
func DefaultTheme() Theme {
	return Theme{Accent: DefaultAccent, SelectionAlpha: DefaultSelectionAlpha}
}

// FillColor returns the translucent fill used in alpha mode.
func (t Theme) FillColor() Color {
	accent := t.Accent
	if accent == (Color{}) {
		accent = DefaultAccent
	}
	alpha := t.SelectionAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSelectionAlpha
	}
	return accent.WithAlpha(alpha)
}
