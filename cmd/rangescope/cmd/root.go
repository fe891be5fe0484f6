package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/rangescope/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rangescope",
	Short: "Explore which conditions produce large FX candles",
	Long: `Rangescope looks through historical FX candles for the conditions
(volume, day of week, price level) that go with larger candle ranges.

It provides tools for:
  - Running the six-pass range analysis with charts and narration
  - Printing baseline statistics for a candle file
  - Importing candle CSVs into SQLite for faster repeat runs
  - Managing analysis configuration files`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON, defaults built in)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// setup loads the configuration and builds the stderr logger every command uses.
func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if logLevel != "" {
		cfg.Output.LogLevel = logLevel
	}
	lvl, err := zerolog.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	logger = newLogger(lvl)
	return nil
}

func newLogger(lvl zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
