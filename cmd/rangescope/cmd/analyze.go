package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rustyeddy/rangescope/analysis"
	"github.com/rustyeddy/rangescope/chart"
	"github.com/rustyeddy/rangescope/id"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the six-pass candle range analysis",
	Long: `Analyze loads the candle data and runs six passes over it:

  1. Range distribution and range over time (all candles)
  2. Volume vs. range (zero-range candles dropped from here on)
  3. Range distribution, all vs. high-volume candles
  4. Candle counts and range by day of week
  5. Price level vs. range
  6. Range distribution, all vs. high-price candles

Each pass writes a PNG chart under <out>/<run-id>/ and prints its findings.

Example:
  rangescope analyze --data EURUSD_15m.csv --detailed`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	anData     string
	anOut      string
	anNoCharts bool
	anDetailed bool
	anNoColor  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&anData, "data", "d", "", "candle file or SQLite DB (overrides data.path)")
	analyzeCmd.Flags().StringVarP(&anOut, "out", "o", "", "chart output directory (overrides output.dir)")
	analyzeCmd.Flags().BoolVar(&anNoCharts, "no-charts", false, "skip chart rendering")
	analyzeCmd.Flags().BoolVar(&anDetailed, "detailed", false, "print subset counts and percentages")
	analyzeCmd.Flags().BoolVar(&anNoColor, "no-color", false, "disable colored headings")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if anData != "" {
		cfg.Data.Path = anData
	}
	if anOut != "" {
		cfg.Output.Dir = anOut
	}
	if anNoCharts {
		cfg.Output.Charts = false
	}
	if anDetailed {
		cfg.Output.Detailed = true
	}
	if anNoColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runID := id.New()
	log := logger.With().Str("run", runID).Logger()

	cs, err := loadCandles(cmd.Context(), cfg.Data.Path, cfg.Data.Instrument, log)
	if err != nil {
		return err
	}

	runner := &analysis.Runner{
		Params:  cfg.Analysis,
		Printer: analysis.NewPrinter(os.Stdout, cfg.Output.Detailed, cfg.Output.Color),
		Logger:  log,
	}
	if cfg.Output.Charts {
		dir := filepath.Join(cfg.Output.Dir, runID)
		r, err := chart.NewPNGRenderer(dir, cfg.Output.WidthIn, cfg.Output.HeightIn)
		if err != nil {
			return err
		}
		runner.Renderer = r
	}

	if err := runner.Run(cs); err != nil {
		log.Error().Err(err).Msg("analysis failed")
		return err
	}
	log.Info().Msg("analysis complete")
	return nil
}
