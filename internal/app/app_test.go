package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fcolor "github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readeck/ditherpunk/configs"
	"github.com/readeck/ditherpunk/pkg/dither"
	"github.com/readeck/ditherpunk/pkg/img"
)

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 16, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 16; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 25), 90, 255})
		}
	}

	path := filepath.Join(dir, "in.png")
	fd, err := os.Create(path)
	require.NoError(t, err)
	defer fd.Close()
	require.NoError(t, png.Encode(fd, m))
	return path
}

func readBuffer(t *testing.T, path string) *dither.Buffer {
	t.Helper()
	im, err := img.Open("native", path)
	require.NoError(t, err)
	return im.Buffer()
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("800x600")
	assert.NoError(t, err)
	assert.Equal(t, []uint{800, 600}, []uint{w, h})

	w, h, err = parseSize("12X4")
	assert.NoError(t, err)
	assert.Equal(t, []uint{12, 4}, []uint{w, h})

	for _, s := range []string{"", "800", "0x10", "ax3"} {
		_, _, err := parseSize(s)
		assert.Error(t, err, s)
	}
}

func TestJob(t *testing.T) {
	t.Run("threshold", func(t *testing.T) {
		dir := t.TempDir()
		in := writeSample(t, dir)
		out := filepath.Join(dir, "out.png")

		j := &job{input: in, output: out, opts: dither.Options{Mode: dither.ModeThreshold}}
		require.NoError(t, j.run())

		expected := readBuffer(t, in)
		dither.Threshold(expected)
		assert.Equal(t, expected, readBuffer(t, out))
	})

	t.Run("diffusion", func(t *testing.T) {
		dir := t.TempDir()
		in := writeSample(t, dir)
		out := filepath.Join(dir, "out.bmp")

		j := &job{input: in, output: out, opts: dither.Options{Mode: dither.ModeDiffusion}}
		require.NoError(t, j.run())

		src := readBuffer(t, in)
		expected := dither.NewBufferFromImage(dither.Diffuse(src).Image())
		assert.Equal(t, expected, readBuffer(t, out))
	})

	t.Run("fit", func(t *testing.T) {
		dir := t.TempDir()
		in := writeSample(t, dir)
		out := filepath.Join(dir, "out.png")

		j := &job{
			input: in, output: out,
			opts:     dither.Options{Mode: dither.ModeOrdered, Order: 1},
			fitWidth: 8, fitHeight: 8,
		}
		require.NoError(t, j.run())

		buf := readBuffer(t, out)
		assert.Equal(t, []int{8, 5}, []int{buf.Width, buf.Height})
	})

	t.Run("invalid options", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.png")

		// The input doesn't exist, options are checked first
		j := &job{
			input:  filepath.Join(dir, "missing.png"),
			output: out,
			opts:   dither.Options{Mode: dither.ModePalette, Colors: 0},
		}
		err := j.run()
		assert.EqualError(t, err, "colors: cannot be blank.")

		_, err = os.Stat(out)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing input", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.png")

		j := &job{
			input:  filepath.Join(dir, "missing.png"),
			output: out,
			opts:   dither.Options{Mode: dither.ModeThreshold},
		}
		err := j.run()
		assert.True(t, errors.Is(err, img.ErrUnreadable))

		_, err = os.Stat(out)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unknown matrix", func(t *testing.T) {
		hook := test.NewGlobal()
		defer hook.Reset()

		dir := t.TempDir()
		in := writeSample(t, dir)
		out := filepath.Join(dir, "out.png")

		j := &job{input: in, output: out, opts: dither.Options{
			Mode:   dither.ModePaletteDiffusion,
			Colors: 3,
			Kernel: "sierra",
		}}
		require.NoError(t, j.run())

		var warn *log.Entry
		for _, e := range hook.AllEntries() {
			if e.Level == log.WarnLevel {
				warn = e
			}
		}
		require.NotNil(t, warn)
		assert.Equal(t, "sierra", warn.Data["matrix"])

		p, _ := dither.DiffusionPalette.First(3)
		expected := readBuffer(t, in)
		dither.Quantize(expected, p)
		assert.Equal(t, expected, readBuffer(t, out))
	})
}

func TestLogFormatter(t *testing.T) {
	fcolor.NoColor = true

	e := log.NewEntry(log.New()).WithFields(log.Fields{
		"mode":       "palette",
		"input":      "a.png",
		"output":     "b.png",
		"width":      uint(10),
		"height":     uint(20),
		"elapsed_ms": 12.5,
	})

	b, err := (&jobLogFormatter{}).Format(e)
	require.NoError(t, err)
	assert.Equal(t, "[DITHER] palette a.png -> b.png 10x20 in 12.5ms\n", string(b))
}

func TestCommands(t *testing.T) {
	fcolor.NoColor = true

	t.Run("kernels", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"kernels"})
		defer rootCmd.SetOut(nil)

		require.NoError(t, rootCmd.Execute())
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "atkinson"))
		assert.Contains(t, lines[0], "total weight 0.75")
		assert.True(t, strings.HasPrefix(lines[1], "floyd-steinberg"))
		assert.True(t, strings.HasPrefix(lines[2], "jarvis-judice-ninke"))
	})

	t.Run("threshold", func(t *testing.T) {
		dir := t.TempDir()
		in := writeSample(t, dir)
		out := filepath.Join(dir, "mono.gif")

		rootCmd.SetArgs([]string{"threshold", in, out})
		require.NoError(t, rootCmd.Execute())

		expected := readBuffer(t, in)
		dither.Threshold(expected)
		assert.Equal(t, expected, readBuffer(t, out))
	})

	t.Run("palette without colors", func(t *testing.T) {
		dir := t.TempDir()
		in := writeSample(t, dir)

		rootCmd.SetArgs([]string{"palette", in, filepath.Join(dir, "out.png")})
		assert.Error(t, rootCmd.Execute())
	})

	t.Run("init-config", func(t *testing.T) {
		old := configs.Config
		defer func() { configs.Config = old }()

		path := filepath.Join(t.TempDir(), "ditherpunk.toml")
		rootCmd.SetArgs([]string{"init-config", path})
		require.NoError(t, rootCmd.Execute())

		require.NoError(t, configs.LoadConfiguration(path))
		assert.Equal(t, old, configs.Config)

		rootCmd.SetArgs([]string{"init-config", path})
		assert.Error(t, rootCmd.Execute())
	})
}
