package voronoi

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyPalette is returned when a palette with no colours is constructed.
var ErrEmptyPalette = errors.New("palette must contain at least one colour")

// Palette is an immutable ordered list of region colours.
type Palette struct {
	colors []RGB
}

// DefaultPalette is the 16-colour VGA set without white and black, which are
// kept as background colours.
var DefaultPalette = Palette{colors: []RGB{
	{255, 0, 0},     // red
	{0, 255, 0},     // lime
	{0, 0, 255},     // blue
	{255, 255, 0},   // yellow
	{0, 255, 255},   // cyan
	{255, 0, 255},   // magenta
	{192, 192, 192}, // silver
	{128, 128, 128}, // gray
	{128, 0, 0},     // maroon
	{128, 128, 0},   // olive
	{0, 128, 0},     // green
	{128, 0, 128},   // purple
	{0, 128, 128},   // teal
	{0, 0, 128},     // navy
}}

// NewPalette copies colors into a new Palette.
func NewPalette(colors []RGB) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, ErrEmptyPalette
	}
	p := Palette{colors: make([]RGB, len(colors))}
	copy(p.colors, colors)
	return p, nil
}

// ParsePalette builds a Palette from hex colour strings such as "#FF8800".
func ParsePalette(hexes []string) (Palette, error) {
	colors := make([]RGB, 0, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette entry %d: %w", i, err)
		}
		r, g, b := c.RGB255()
		colors = append(colors, RGB{R: r, G: g, B: b})
	}
	return NewPalette(colors)
}

// Len returns the number of colours. The zero Palette has length 0.
func (p Palette) Len() int {
	return len(p.colors)
}

// ColorFor returns the colour for a seed ordinal, wrapping around the
// palette. Negative ordinals and the empty palette yield White.
func (p Palette) ColorFor(ordinal int) RGB {
	if ordinal < 0 || len(p.colors) == 0 {
		return White
	}
	return p.colors[ordinal%len(p.colors)]
}

// Colors returns a copy of the palette entries.
func (p Palette) Colors() []RGB {
	out := make([]RGB, len(p.colors))
	copy(out, p.colors)
	return out
}
