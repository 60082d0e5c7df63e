package dither

import (
	"errors"
	"fmt"
)

// ErrPaletteSize is returned when a palette selection is empty or larger
// than the available colors.
var ErrPaletteSize = errors.New("invalid palette size")

// Palette is an ordered, immutable list of colors. The order is the
// priority order used by First and the tie-break order used by Nearest.
type Palette struct {
	colors []Color
}

// NewPalette returns a palette holding a copy of the given colors.
func NewPalette(colors ...Color) Palette {
	p := Palette{colors: make([]Color, len(colors))}
	copy(p.colors, colors)
	return p
}

var (
	// Catalog is the full color catalog.
	Catalog = NewPalette(White, Black, Red, Green, Blue, Yellow, Magenta, Cyan)

	// DiffusionPalette is the subset used by palette error diffusion.
	DiffusionPalette = NewPalette(Black, White, Red, Blue, Green)
)

// Len returns the number of colors in the palette.
func (p Palette) Len() int {
	return len(p.colors)
}

// Colors returns a copy of the palette colors.
func (p Palette) Colors() []Color {
	res := make([]Color, len(p.colors))
	copy(res, p.colors)
	return res
}

// First returns a new palette made of the first n colors.
func (p Palette) First(n int) (Palette, error) {
	if n < 1 || n > len(p.colors) {
		return Palette{}, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrPaletteSize, n, len(p.colors))
	}
	return NewPalette(p.colors[:n]...), nil
}

// Nearest returns the palette color closest to c. On equal distances
// the first color in palette order wins.
//
// It panics on an empty palette, use First to build a checked selection.
func (p Palette) Nearest(c Color) Color {
	if len(p.colors) == 0 {
		panic("dither: nearest color in an empty palette")
	}

	res := p.colors[0]
	min := Distance(c, res)
	for _, x := range p.colors[1:] {
		if d := Distance(c, x); d < min {
			min = d
			res = x
		}
	}
	return res
}
