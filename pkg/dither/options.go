package dither

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrUnknownMode is returned when parsing an unknown mode name.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is a pixel transform strategy.
type Mode int

// Available modes.
const (
	ModeThreshold Mode = iota + 1
	ModeRandom
	ModeOrdered
	ModePalette
	ModeDiffusion
	ModePaletteDiffusion
)

var modeNames = map[Mode]string{
	ModeThreshold:        "threshold",
	ModeRandom:           "random",
	ModeOrdered:          "ordered",
	ModePalette:          "palette",
	ModeDiffusion:        "diffusion",
	ModePaletteDiffusion: "palette-diffusion",
}

// String returns the mode name.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode for the given name.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, s := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// RandSource provides uniform random numbers in [0, 1).
// *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Options selects and parametrizes a transform.
type Options struct {
	Mode Mode `json:"mode"`

	// Colors is the number of palette colors, for palette modes.
	Colors int `json:"colors"`

	// Order is the Bayer matrix order, for the ordered mode.
	Order uint `json:"order"`

	// Kernel is the diffusion kernel name, for the palette-diffusion mode.
	// Unknown names fall back to an empty kernel.
	Kernel string `json:"kernel"`

	// Rand is the random source of the random mode. A time seeded
	// source is used when nil.
	Rand RandSource `json:"-"`
}

// Validate checks the options consistency.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Mode, validation.Required, validation.By(func(v interface{}) error {
			if _, ok := modeNames[v.(Mode)]; !ok {
				return ErrUnknownMode
			}
			return nil
		})),
		validation.Field(&o.Colors,
			validation.When(o.Mode == ModePalette,
				validation.Required, validation.Min(1), validation.Max(Catalog.Len())),
			validation.When(o.Mode == ModePaletteDiffusion,
				validation.Required, validation.Min(1), validation.Max(DiffusionPalette.Len())),
		),
		validation.Field(&o.Order,
			validation.When(o.Mode == ModeOrdered, validation.Max(uint(MaxBayerOrder))),
		),
	)
}
