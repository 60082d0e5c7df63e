package native

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"io"

	"image/gif"  // GIF decoder and encoder
	"image/jpeg" // JPEG decoder and encoder
	"image/png"  // PNG decoder and encoder

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	_ "github.com/biessek/golang-ico" // ICO decoder
	"golang.org/x/image/bmp"          // BMP decoder and encoder
	"golang.org/x/image/tiff"         // TIFF decoder and encoder
	_ "golang.org/x/image/webp"       // WEBP decoder

	"github.com/readeck/ditherpunk/pkg/dither"
	"github.com/readeck/ditherpunk/pkg/img"
)

func init() {
	img.AddLoader("native", New)
}

// Image is an image.
type Image struct {
	m       image.Image
	format  string
	quality uint
}

// New returns a new Image instance from a reader.
func New(r io.Reader) (img.Image, error) {
	// We need to grab the format first, hence this two pass thing
	var buf bytes.Buffer
	tee := io.TeeReader(r, &buf)

	c, format, err := image.DecodeConfig(tee)
	if err != nil {
		return nil, err
	}

	if c.Width*c.Height > img.MaxPixels {
		return nil, fmt.Errorf("%w (%dx%d)", img.ErrTooBig, c.Width, c.Height)
	}

	m, err := imaging.Decode(
		io.MultiReader(&buf, r),
		imaging.AutoOrientation(true),
	)
	if err != nil {
		return nil, err
	}

	return &Image{
		m:       m,
		format:  format,
		quality: 95,
	}, nil
}

// Close must be called after you're done with your image conversion.
func (im *Image) Close() error {
	return nil
}

// Encode encodes the image to the given format. If format is an
// empty string it will reuse the original format if possible.
// It fallbacks to png encoding.
func (im *Image) Encode(w io.Writer, format string) error {
	if format == "" {
		format = im.format
	}

	switch format {
	case "gif":
		return gif.Encode(w, im.m, &gif.Options{
			NumColors: 256,
			Quantizer: exactQuantizer{},
			Drawer:    draw.Src,
		})
	case "jpeg":
		return jpeg.Encode(w, im.m, &jpeg.Options{Quality: int(im.quality)})
	case "bmp":
		return bmp.Encode(w, im.m)
	case "tiff":
		return tiff.Encode(w, im.m, &tiff.Options{Compression: tiff.Deflate})
	}

	encoder := &png.Encoder{CompressionLevel: png.BestCompression}
	return encoder.Encode(w, im.m)
}

// Format returns the image format.
func (im *Image) Format() string {
	return im.format
}

// Width returns the image width.
func (im *Image) Width() uint {
	return uint(im.m.Bounds().Dx())
}

// Height returns the image height.
func (im *Image) Height() uint {
	return uint(im.m.Bounds().Dy())
}

// SetQuality sets the JPEG quality of final image.
func (im *Image) SetQuality(q uint) {
	im.quality = q
}

// Fit resizes the image keeping the aspect ratio and staying within
// the given width and height. Smaller images are left untouched.
func (im *Image) Fit(w, h uint) error {
	ow := im.Width()
	oh := im.Height()

	if w == 0 || h == 0 || (w >= ow && h >= oh) {
		return nil
	}

	srcAspectRatio := float64(ow) / float64(oh)
	maxAspectRatio := float64(w) / float64(h)

	var nw, nh uint
	if srcAspectRatio > maxAspectRatio {
		nw = w
		nh = uint(float64(nw) / srcAspectRatio)
	} else {
		nh = h
		nw = uint(float64(nh) * srcAspectRatio)
	}
	if nw == 0 {
		nw = 1
	}
	if nh == 0 {
		nh = 1
	}

	im.m = transform.Resize(im.m, int(nw), int(nh), transform.Lanczos)
	return nil
}

// Buffer returns a new RGB buffer of the image.
func (im *Image) Buffer() *dither.Buffer {
	return dither.NewBufferFromImage(imaging.Clone(im.m))
}

// SetImage replaces the wrapped image.
func (im *Image) SetImage(m image.Image) {
	im.m = m
}

// exactQuantizer keeps the image's own colors when there are no more
// than 256 of them, so that GIF encoding doesn't alter dithered images.
type exactQuantizer struct{}

func (exactQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	seen := map[color.RGBA]bool{}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			if seen[c] {
				continue
			}
			if len(seen) == cap(p) {
				return append(p[:0], palette.Plan9[:cap(p)]...)
			}
			seen[c] = true
			p = append(p, c)
		}
	}
	return p
}
