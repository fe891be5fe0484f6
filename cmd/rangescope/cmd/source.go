package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/rangescope/market"
	"github.com/rustyeddy/rangescope/store"
)

// isSQLite reports whether path names a database written by import rather
// than a candle file.
func isSQLite(path string) (string, bool) {
	if p, ok := strings.CutPrefix(path, "sqlite:"); ok {
		return p, true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return path, true
	}
	return path, false
}

// loadCandles reads the configured source into a CandleSet.
func loadCandles(ctx context.Context, path, instrument string, log zerolog.Logger) (*market.CandleSet, error) {
	inst, ok := market.LookupInstrument(instrument)
	if !ok {
		return nil, fmt.Errorf("unknown instrument: %s", instrument)
	}

	var (
		cs  *market.CandleSet
		err error
	)
	if dbPath, ok := isSQLite(path); ok {
		// sql.Open would happily create an empty database.
		if _, statErr := os.Stat(dbPath); statErr != nil {
			return nil, fmt.Errorf("%w: %w", market.ErrFileNotFound, statErr)
		}
		db, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		cs, err = db.LoadCandles(ctx, inst, dbPath)
		if err != nil {
			return nil, fmt.Errorf("load candles: %w", err)
		}
	} else {
		cs, err = market.LoadFile(path, inst)
		if err != nil {
			return nil, fmt.Errorf("load candles: %w", err)
		}
	}

	log.Info().
		Str("source", path).
		Str("instrument", cs.Name()).
		Int("candles", cs.Len()).
		Time("start", cs.Start()).
		Time("end", cs.End()).
		Msg("candles loaded")
	return cs, nil
}

// lastImport reports the most recent import behind a SQLite source. ok is
// false for candle files.
func lastImport(ctx context.Context, path, instrument string) (imp store.Import, ok bool, err error) {
	dbPath, isDB := isSQLite(path)
	if !isDB {
		return store.Import{}, false, nil
	}
	inst, found := market.LookupInstrument(instrument)
	if !found {
		return store.Import{}, false, fmt.Errorf("unknown instrument: %s", instrument)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return store.Import{}, false, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if imp, err = db.LastImport(ctx, inst.Name); err != nil {
		return store.Import{}, false, err
	}
	return imp, true, nil
}
