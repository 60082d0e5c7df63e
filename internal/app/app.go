package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thoas/go-funk"

	"github.com/readeck/ditherpunk/configs"
	"github.com/readeck/ditherpunk/pkg/dither"

	_ "github.com/readeck/ditherpunk/pkg/img/native" // native image loader
)

const defaultConfigPath = "ditherpunk.toml"

var rootCmd = &cobra.Command{
	Use:   "ditherpunk",
	Short: "Converts an image to monochrome or to a reduced color palette",
	Long: "Converts an image to monochrome or to a reduced color palette.\n\nModes: " +
		strings.Join(funk.Map(allModes, func(m dither.Mode) string {
			return m.String()
		}).([]string), ", "),
	PersistentPreRunE: appPersistentPreRun,
	SilenceUsage:      true,
}

var (
	configPath string
	fitSize    string
)

var allModes = []dither.Mode{
	dither.ModeThreshold,
	dither.ModeRandom,
	dither.ModeOrdered,
	dither.ModePalette,
	dither.ModeDiffusion,
	dither.ModePaletteDiffusion,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath, "config", "c",
		"", "Configuration file",
	)
	rootCmd.PersistentFlags().StringVarP(
		&configs.Config.Main.LogLevel, "level", "l",
		configs.Config.Main.LogLevel, "Log level",
	)
	rootCmd.PersistentFlags().StringVar(
		&fitSize, "fit", "",
		"Fit the image in WIDTHxHEIGHT before processing",
	)
}

func appPersistentPreRun(c *cobra.Command, _ []string) error {
	level := configs.Config.Main.LogLevel

	path := configPath
	if path == "" {
		// The default file is optional
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	if err := configs.LoadConfiguration(path); err != nil {
		return fmt.Errorf("error loading configuration (%s)", err)
	}

	// Command line wins over the configuration file
	if c.Flags().Changed("level") {
		configs.Config.Main.LogLevel = level
	}

	// Enforce debug in dev mode
	if configs.Config.Main.DevMode {
		configs.Config.Main.LogLevel = "debug"
	}

	// Setup logger
	lvl, err := log.ParseLevel(configs.Config.Main.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.WithField("log_level", lvl).Debug()
	if configs.Config.Main.DevMode {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
		log.SetOutput(colorable.NewColorableStderr())
	}

	if fitSize != "" {
		w, h, err := parseSize(fitSize)
		if err != nil {
			return err
		}
		configs.Config.Dither.FitWidth = w
		configs.Config.Dither.FitHeight = h
	}

	return nil
}

func parseSize(s string) (uint, uint, error) {
	var w, h uint
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil || w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WIDTHxHEIGHT)", s)
	}
	return w, h, nil
}

// Run starts the application
func Run() error {
	return rootCmd.Execute()
}
