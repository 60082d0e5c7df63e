package app

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/readeck/ditherpunk/configs"
)

func init() {
	initConfigCmd.Flags().BoolVarP(&forceConfig, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd)
}

var forceConfig bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [PATH]",
	Short: "Writes the current configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initConfig,
}

func initConfig(_ *cobra.Command, args []string) error {
	filename := defaultConfigPath
	if len(args) > 0 {
		filename = args[0]
	}

	_, err := os.Stat(filename)
	if err == nil && !forceConfig {
		return fmt.Errorf("'%s' already exists", filename)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := configs.WriteConfig(filename); err != nil {
		return err
	}
	log.WithField("path", filename).Info("configuration written")
	return nil
}
