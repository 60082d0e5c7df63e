package app

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/readeck/ditherpunk/configs"
	"github.com/readeck/ditherpunk/pkg/dither"
	"github.com/readeck/ditherpunk/pkg/img"
)

func init() {
	rootCmd.AddCommand(
		newModeCommand(dither.ModeThreshold, "Renders the image with a monochrome threshold"),
		newModeCommand(dither.ModeRandom, "Renders the image with random dithering"),
		newModeCommand(dither.ModeOrdered, "Renders the image with a Bayer matrix (ordered dithering)"),
		newModeCommand(dither.ModePalette, "Renders the image with a limited color palette"),
		newModeCommand(dither.ModeDiffusion, "Renders the image with grayscale error diffusion"),
		newModeCommand(dither.ModePaletteDiffusion, "Renders the image with a limited color palette and error diffusion"),
	)
}

type modeFlags struct {
	colors int
	order  uint
	kernel string
	seed   int64
}

func newModeCommand(mode dither.Mode, short string) *cobra.Command {
	f := &modeFlags{}
	cmd := &cobra.Command{
		Use:   mode.String() + " INPUT [OUTPUT]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
	}

	flags := cmd.Flags()
	switch mode {
	case dither.ModeRandom:
		flags.Int64Var(&f.seed, "seed", 0, "Random seed (0 uses the configuration or the current time)")
	case dither.ModeOrdered:
		flags.UintVar(&f.order, "order", configs.Config.Dither.BayerOrder, "Bayer matrix order")
	case dither.ModePalette:
		flags.IntVarP(&f.colors, "colors", "n", 0,
			"Number of colors, taken in [WHITE, BLACK, RED, GREEN, BLUE, YELLOW, MAGENTA, CYAN]")
		cmd.MarkFlagRequired("colors")
	case dither.ModePaletteDiffusion:
		flags.IntVarP(&f.colors, "colors", "n", 0,
			"Number of colors, taken in [BLACK, WHITE, RED, BLUE, GREEN]")
		flags.StringVarP(&f.kernel, "matrix", "m", configs.Config.Dither.Kernel, "Error diffusion matrix")
		cmd.MarkFlagRequired("colors")
	}

	cmd.RunE = func(c *cobra.Command, args []string) error {
		j := &job{
			input:  args[0],
			output: configs.Config.Output.Filename(mode),
			opts: dither.Options{
				Mode:   mode,
				Colors: f.colors,
				Order:  f.order,
				Kernel: f.kernel,
			},
			fitWidth:  configs.Config.Dither.FitWidth,
			fitHeight: configs.Config.Dither.FitHeight,
		}
		if len(args) > 1 {
			j.output = args[1]
		}

		// Flags left alone take the configuration values
		if !c.Flags().Changed("order") {
			j.opts.Order = configs.Config.Dither.BayerOrder
		}
		if !c.Flags().Changed("matrix") {
			j.opts.Kernel = configs.Config.Dither.Kernel
		}

		if mode == dither.ModeRandom {
			seed := f.seed
			if seed == 0 {
				seed = configs.Config.Dither.Seed
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			log.WithField("seed", seed).Debug("random source")
			j.opts.Rand = rand.New(rand.NewSource(seed))
		}

		return j.run()
	}

	return cmd
}

// job is one image transformation, from the input file to the output file.
type job struct {
	input     string
	output    string
	opts      dither.Options
	fitWidth  uint
	fitHeight uint
}

func (j *job) run() error {
	l := log.WithFields(log.Fields{
		"mode":  j.opts.Mode.String(),
		"input": j.input,
	})

	// Reject bad options before reading anything
	if err := j.opts.Validate(); err != nil {
		return err
	}
	if j.opts.Mode == dither.ModePaletteDiffusion {
		if _, ok := dither.LookupKernel(j.opts.Kernel); !ok {
			l.WithField("matrix", j.opts.Kernel).Warn("unknown diffusion matrix, no error diffusion will be applied")
		}
	}

	start := time.Now()
	im, err := img.Open(configs.Config.Main.Loader, j.input)
	if err != nil {
		return err
	}
	defer im.Close()

	if err = im.Fit(j.fitWidth, j.fitHeight); err != nil {
		return err
	}
	l.WithFields(log.Fields{
		"format": im.Format(),
		"width":  im.Width(),
		"height": im.Height(),
	}).Debug("image loaded")

	m, err := dither.Process(im.Buffer(), j.opts)
	if err != nil {
		return err
	}
	im.SetImage(m)

	if err = img.Save(j.output, im, ""); err != nil {
		return err
	}

	newLogger().WithFields(log.Fields{
		"mode":       j.opts.Mode.String(),
		"input":      j.input,
		"output":     j.output,
		"width":      im.Width(),
		"height":     im.Height(),
		"elapsed_ms": float64(time.Since(start).Nanoseconds()) / 1000000.0,
	}).Info("image saved")

	return nil
}
