package dither

import "math"

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Catalog colors.
var (
	White   = Color{255, 255, 255}
	Black   = Color{0, 0, 0}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Magenta = Color{255, 0, 255}
	Cyan    = Color{0, 255, 255}
)

// RGBA implements color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Luminance returns the weighted brightness of the color, in [0, 255].
func (c Color) Luminance() float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// Distance returns the euclidean distance between two colors,
// each channel being a coordinate.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
