package dither

import (
	"image"
	"image/color"
)

// Buffer is a mutable grid of RGB colors, stored in row-major order.
type Buffer struct {
	Width  int
	Height int
	Pix    []Color
}

// NewBuffer returns a black buffer of the given size.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]Color, w*h),
	}
}

// NewBufferFromImage copies an image into a new Buffer. Alpha is dropped
// without being applied to the color channels.
func NewBufferFromImage(m image.Image) *Buffer {
	b := m.Bounds()
	buf := NewBuffer(b.Dx(), b.Dy())

	if nm, ok := m.(*image.NRGBA); ok {
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				c := nm.NRGBAAt(b.Min.X+x, b.Min.Y+y)
				buf.Pix[y*buf.Width+x] = Color{c.R, c.G, c.B}
			}
		}
		return buf
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			buf.Pix[y*buf.Width+x] = Color{c.R, c.G, c.B}
		}
	}
	return buf
}

// In reports whether (x, y) is inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the color at (x, y).
func (b *Buffer) At(x, y int) Color {
	return b.Pix[y*b.Width+x]
}

// Set sets the color at (x, y).
func (b *Buffer) Set(x, y int, c Color) {
	b.Pix[y*b.Width+x] = c
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	res := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]Color, len(b.Pix))}
	copy(res.Pix, b.Pix)
	return res
}

// Image returns an opaque RGBA image of the buffer.
func (b *Buffer) Image() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		m.Pix[i*4] = c.R
		m.Pix[i*4+1] = c.G
		m.Pix[i*4+2] = c.B
		m.Pix[i*4+3] = 0xff
	}
	return m
}

// GrayBuffer is a single channel grid, stored in row-major order.
type GrayBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrayBuffer returns a black gray buffer of the given size.
func NewGrayBuffer(w, h int) *GrayBuffer {
	return &GrayBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h),
	}
}

// At returns the value at (x, y).
func (b *GrayBuffer) At(x, y int) uint8 {
	return b.Pix[y*b.Width+x]
}

// Image returns a gray image of the buffer.
func (b *GrayBuffer) Image() *image.Gray {
	m := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	copy(m.Pix, b.Pix)
	return m
}

var _ color.Color = Color{}
