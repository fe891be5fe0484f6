package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/rangescope/market"
	"github.com/rustyeddy/rangescope/stats"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print baseline statistics without charts",
	Long: `Summary prints the candle count, the range and volume baselines before and
after dropping zero-range candles, and the weekday table.

Example:
  rangescope summary --data EURUSD_15m.csv.xz`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var smData string

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&smData, "data", "d", "", "candle file or SQLite DB (overrides data.path)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	if smData != "" {
		cfg.Data.Path = smData
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cs, err := loadCandles(cmd.Context(), cfg.Data.Path, cfg.Data.Instrument, logger)
	if err != nil {
		return err
	}
	cs.PrintStats(os.Stdout)

	imp, ok, err := lastImport(cmd.Context(), cfg.Data.Path, cfg.Data.Instrument)
	if err != nil {
		return fmt.Errorf("last import: %w", err)
	}
	if ok {
		fmt.Printf("Last import: %s, %d rows from %s at %s\n",
			imp.ID, imp.Rows, imp.Source, imp.ImportedAt.Format(time.RFC3339))
	}

	all, err := stats.NewBaseline(cs)
	if err != nil {
		return err
	}
	moved := cs.Filter(market.RangeAbove(0))
	b1, err := stats.NewBaseline(moved)
	if err != nil {
		return err
	}

	pips := func(v float64) float64 { return v }
	if cs.Instrument != nil {
		pips = cs.Instrument.ToPips
	}

	fmt.Printf("%-18s %10s %12s %12s %10s\n", "", "candles", "range mean", "range sd", "mean pips")
	for _, row := range []struct {
		name string
		b    stats.Baseline
	}{
		{"all candles", all},
		{"range > 0", b1},
	} {
		fmt.Printf("%-18s %10d %12.6f %12.6f %10.2f\n",
			row.name, row.b.Range.Count, row.b.Range.Mean, row.b.Range.StdDev, pips(row.b.Range.Mean))
	}
	fmt.Printf("\nvolume (range > 0): mean %.4g sd %.4g\n\n", b1.Volume.Mean, b1.Volume.StdDev)

	t := stats.ByWeekday(moved, b1.Range.Mean)
	fmt.Printf("%-10s %8s %10s %14s\n", "day", "total", "above avg", "above sum")
	for _, r := range t {
		fmt.Printf("%-10s %8d %10d %14.5f\n", r.Name(), r.Total, r.AboveCount, r.AboveSum)
	}
	return nil
}
