// Package dither implements color reduction and dithering of RGB buffers:
// thresholding, random and ordered dithering, palette quantization and
// error diffusion.
//
// Every transform runs on the calling goroutine and traverses the buffer in
// row-major order, top to bottom then left to right. Error diffusion results
// depend on this order.
package dither

import (
	"fmt"
	"image"
	"math/rand"
	"time"
)

// Threshold turns every pixel white when its luminance is above 128,
// black otherwise.
func Threshold(buf *Buffer) {
	for i, c := range buf.Pix {
		buf.Pix[i] = mono(c.Luminance() > 128)
	}
}

// Random compares each pixel luminance, as a fraction of 255, with a new
// random draw.
func Random(buf *Buffer, r RandSource) {
	for i, c := range buf.Pix {
		buf.Pix[i] = mono(c.Luminance()/255 > r.Float64())
	}
}

// Ordered thresholds each pixel against the tiled Bayer matrix.
func Ordered(buf *Buffer, m *BayerMatrix) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			buf.Set(x, y, mono(buf.At(x, y).Luminance() > m.Threshold(x, y)))
		}
	}
}

// Quantize replaces every pixel with its nearest palette color.
func Quantize(buf *Buffer, p Palette) {
	for i, c := range buf.Pix {
		buf.Pix[i] = p.Nearest(c)
	}
}

// Diffuse converts the buffer to luminance and binarizes it, spreading
// the residual with GrayscaleKernel. The source buffer is left untouched.
func Diffuse(buf *Buffer) *GrayBuffer {
	res := NewGrayBuffer(buf.Width, buf.Height)

	// Shadow buffer, in [0, 1]
	values := make([]float64, len(buf.Pix))
	for i, c := range buf.Pix {
		values[i] = float64(uint8(c.Luminance())) / 255
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			i := y*buf.Width + x
			old := values[i]
			var v float64
			if old > 0.5 {
				v = 1
			}
			res.Pix[i] = uint8(v * 255)

			e := old - v
			for _, t := range GrayscaleKernel {
				nx, ny := x+t.DX, y+t.DY
				if nx < buf.Width && ny < buf.Height {
					values[ny*buf.Width+nx] += e * t.Weight
				}
			}
		}
	}

	return res
}

// QuantizeDiffuse quantizes each pixel to the palette and spreads the
// per channel residual to its neighbors with the given kernel. Neighbor
// channels are clamped to [0, 255]. An empty kernel makes it equivalent
// to Quantize.
func QuantizeDiffuse(buf *Buffer, p Palette, k Kernel) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			old := buf.At(x, y)
			q := p.Nearest(old)
			buf.Set(x, y, q)

			er := float64(old.R) - float64(q.R)
			eg := float64(old.G) - float64(q.G)
			eb := float64(old.B) - float64(q.B)

			for _, t := range k {
				nx, ny := x+t.DX, y+t.DY
				if !buf.In(nx, ny) {
					continue
				}
				n := buf.At(nx, ny)
				buf.Set(nx, ny, Color{
					R: clamp(float64(n.R) + er*t.Weight),
					G: clamp(float64(n.G) + eg*t.Weight),
					B: clamp(float64(n.B) + eb*t.Weight),
				})
			}
		}
	}
}

// Process validates the options and runs the selected transform on buf.
// Nothing is modified when the options are invalid.
//
// The returned image is an *image.Gray for ModeDiffusion and an
// *image.RGBA otherwise.
func Process(buf *Buffer, opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch opts.Mode {
	case ModeThreshold:
		Threshold(buf)
	case ModeRandom:
		r := opts.Rand
		if r == nil {
			r = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		Random(buf, r)
	case ModeOrdered:
		m, err := NewBayerMatrix(opts.Order)
		if err != nil {
			return nil, err
		}
		Ordered(buf, m)
	case ModePalette:
		p, err := Catalog.First(opts.Colors)
		if err != nil {
			return nil, err
		}
		Quantize(buf, p)
	case ModeDiffusion:
		return Diffuse(buf).Image(), nil
	case ModePaletteDiffusion:
		p, err := DiffusionPalette.First(opts.Colors)
		if err != nil {
			return nil, err
		}
		k, _ := LookupKernel(opts.Kernel)
		QuantizeDiffuse(buf, p, k)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, opts.Mode)
	}

	return buf.Image(), nil
}

func mono(white bool) Color {
	if white {
		return White
	}
	return Black
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
