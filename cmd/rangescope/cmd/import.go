package cmd

import (
	"fmt"

	"github.com/rustyeddy/rangescope/market"
	"github.com/rustyeddy/rangescope/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <candle-file>",
	Short: "Import a candle file into SQLite",
	Long: `Import parses a candle file (.csv, .csv.xz or .json) once and stores the
candles in a SQLite database. Point analyze at the database afterwards.

Example:
  rangescope import EURUSD_15m.csv --db eurusd.sqlite
  rangescope analyze --data eurusd.sqlite`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importDBPath string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importDBPath, "db", "./candles.sqlite", "path to SQLite candle DB")
}

func runImport(cmd *cobra.Command, args []string) error {
	inst, ok := market.LookupInstrument(cfg.Data.Instrument)
	if !ok {
		return fmt.Errorf("unknown instrument: %s", cfg.Data.Instrument)
	}

	cs, err := market.LoadFile(args[0], inst)
	if err != nil {
		return fmt.Errorf("load candles: %w", err)
	}

	db, err := store.Open(importDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	imp, err := db.ImportCandles(cmd.Context(), inst.Name, cs)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info().
		Str("import", imp.ID).
		Str("db", importDBPath).
		Int("rows", imp.Rows).
		Msg("candles imported")
	fmt.Printf("✓ Imported %d %s candles into %s (import %s)\n", imp.Rows, cs.Name(), importDBPath, imp.ID)
	return nil
}
