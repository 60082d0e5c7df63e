package configs

import (
	"os"

	"github.com/pelletier/go-toml"

	"github.com/readeck/ditherpunk/pkg/dither"
)

// Because we don't need viper's mess for just storing configuration from
// a source.
type config struct {
	Main   configMain   `toml:"main"`
	Dither configDither `toml:"dither"`
	Output configOutput `toml:"output"`
}

type configMain struct {
	LogLevel string `toml:"log_level"`
	DevMode  bool   `toml:"dev_mode"`
	Loader   string `toml:"loader"`
}

type configDither struct {
	BayerOrder uint   `toml:"bayer_order"`
	Kernel     string `toml:"kernel"`
	Seed       int64  `toml:"seed"`
	FitWidth   uint   `toml:"fit_width"`
	FitHeight  uint   `toml:"fit_height"`
}

type configOutput struct {
	Threshold        string `toml:"threshold"`
	Random           string `toml:"random"`
	Ordered          string `toml:"ordered"`
	Palette          string `toml:"palette"`
	Diffusion        string `toml:"diffusion"`
	PaletteDiffusion string `toml:"palette_diffusion"`
}

// Filename returns the default output file of a mode.
func (c configOutput) Filename(m dither.Mode) string {
	switch m {
	case dither.ModeThreshold:
		return c.Threshold
	case dither.ModeRandom:
		return c.Random
	case dither.ModeOrdered:
		return c.Ordered
	case dither.ModePalette:
		return c.Palette
	case dither.ModeDiffusion:
		return c.Diffusion
	case dither.ModePaletteDiffusion:
		return c.PaletteDiffusion
	}
	return "image.png"
}

// Config holds the configuration data from configuration files
// or flags.
//
// This variable sets some default values that might be overwritten
// by a configuration file.
var Config = config{
	Main: configMain{
		LogLevel: "info",
		DevMode:  false,
		Loader:   "native",
	},
	Dither: configDither{
		BayerOrder: 2,
		Kernel:     dither.FloydSteinberg,
	},
	Output: configOutput{
		Threshold:        "image_monochrome.png",
		Random:           "image_tramage.png",
		Ordered:          "image_bayer.png",
		Palette:          "image_palette.png",
		Diffusion:        "image_diffusion.png",
		PaletteDiffusion: "image_palette_diffusion.png",
	},
}

// LoadConfiguration loads the configuration file.
func LoadConfiguration(configPath string) error {
	if configPath == "" {
		return nil
	}

	fd, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	dec := toml.NewDecoder(fd)
	if err := dec.Decode(&Config); err != nil {
		return err
	}

	return nil
}

// WriteConfig writes configuration to a file.
func WriteConfig(filename string) error {
	fd, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	enc := toml.NewEncoder(fd).
		ArraysWithOneElementPerLine(true).
		Indentation("  ").
		Order(toml.OrderPreserve)

	if err = enc.Encode(Config); err != nil {
		defer fd.Close()
		return err
	}

	return fd.Close()
}
