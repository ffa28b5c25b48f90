package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/golivefolio/internal/config"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "golivefolio",
	Short: "Server-driven personal portfolio",
	Long: `golivefolio renders a personal portfolio and drives its behavior
(theme, navigation, animations, project filter, contact form) from the
server over a WebSocket.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".golivefolio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads and validates the configuration. --verbose forces debug
// logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (logging.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, w)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(log)
	return log, nil
}
