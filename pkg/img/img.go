package img

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/readeck/ditherpunk/pkg/dither"
)

var (
	// ErrUnreadable is returned when an image can't be opened or decoded.
	ErrUnreadable = errors.New("image not found or unreadable")

	// ErrTooBig is returned when an image exceeds the maximum pixel count.
	ErrTooBig = errors.New("image is too big")
)

// MaxPixels is the largest accepted image, in pixels.
const MaxPixels = 30000000

// Image describes the interface of an image manipulation object.
type Image interface {
	Close() error
	Encode(w io.Writer, format string) error
	Format() string
	Width() uint
	Height() uint
	Fit(w, h uint) error
	Buffer() *dither.Buffer
	SetImage(m image.Image)
}

var loaders = map[string]func(io.Reader) (Image, error){}

// AddLoader adds a new image loader to the available loaders.
func AddLoader(name string, fn func(io.Reader) (Image, error)) {
	loaders[name] = fn
}

// New loads an image using the given loader.
func New(loader string, r io.Reader) (Image, error) {
	fn, ok := loaders[loader]
	if !ok {
		return nil, fmt.Errorf("loaders %s not found", loader)
	}

	return fn(r)
}

// Open loads the image file at path using the given loader.
func Open(loader, path string) (Image, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, err)
	}
	defer fd.Close()

	im, err := New(loader, fd)
	if err != nil {
		if errors.Is(err, ErrTooBig) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnreadable, path, err)
	}
	return im, nil
}

// FormatFromPath returns the encoding format matching a file extension.
// It fallbacks to png.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return "png"
}

// Save encodes the image to path. The file is first written next to its
// destination and only renamed once encoding succeeded, so a failure never
// leaves a partial file behind. When format is empty, it's deduced from
// the file extension.
func Save(path string, im Image, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	fd, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := fd.Name()

	if err = im.Encode(fd, format); err != nil {
		fd.Close()
		os.Remove(tmp)
		return err
	}
	if err = fd.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err = os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}

	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
