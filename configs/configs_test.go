package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readeck/ditherpunk/pkg/dither"
)

func restore(t *testing.T) {
	old := Config
	t.Cleanup(func() {
		Config = old
	})
}

func TestLoadConfiguration(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		restore(t)
		assert.NoError(t, LoadConfiguration(""))
		assert.Equal(t, uint(2), Config.Dither.BayerOrder)
	})

	t.Run("missing", func(t *testing.T) {
		restore(t)
		err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.toml"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("override", func(t *testing.T) {
		restore(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[main]
log_level = "debug"

[dither]
bayer_order = 4
kernel = "atkinson"
seed = 12

[output]
ordered = "bayer.gif"
`), 0600))

		require.NoError(t, LoadConfiguration(path))
		assert.Equal(t, "debug", Config.Main.LogLevel)
		assert.Equal(t, "native", Config.Main.Loader)
		assert.Equal(t, uint(4), Config.Dither.BayerOrder)
		assert.Equal(t, dither.Atkinson, Config.Dither.Kernel)
		assert.Equal(t, int64(12), Config.Dither.Seed)
		assert.Equal(t, "bayer.gif", Config.Output.Filename(dither.ModeOrdered))
		assert.Equal(t, "image_palette.png", Config.Output.Filename(dither.ModePalette))
	})

	t.Run("invalid", func(t *testing.T) {
		restore(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[dither\nbayer_order = "), 0600))
		assert.Error(t, LoadConfiguration(path))
	})
}

func TestWriteConfig(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	Config.Dither.Kernel = dither.JarvisJudiceNinke
	Config.Output.Random = "noise.png"
	require.NoError(t, WriteConfig(path))

	expected := Config
	Config.Dither.Kernel = ""
	Config.Output.Random = ""
	require.NoError(t, LoadConfiguration(path))
	assert.Equal(t, expected, Config)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		mode     dither.Mode
		expected string
	}{
		{dither.ModeThreshold, "image_monochrome.png"},
		{dither.ModeRandom, "image_tramage.png"},
		{dither.ModeOrdered, "image_bayer.png"},
		{dither.ModePalette, "image_palette.png"},
		{dither.ModeDiffusion, "image_diffusion.png"},
		{dither.ModePaletteDiffusion, "image_palette_diffusion.png"},
		{dither.Mode(0), "image.png"},
	}

	for _, x := range tests {
		assert.Equal(t, x.expected, Config.Output.Filename(x.mode))
	}
}
